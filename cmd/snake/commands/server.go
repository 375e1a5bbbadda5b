package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/battlesnakeio/solo/api"
	"github.com/battlesnakeio/solo/config"
	"github.com/battlesnakeio/solo/controller"
	"github.com/battlesnakeio/solo/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen  = ":3005"
	promEnable = true
	promListen = ":9000"
)

func init() {
	serverCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	serverCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	serverCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
}

var serverCmd = &cobra.Command{
	Use:    "server",
	Short:  "serves snake games over http and websockets",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		store := controller.InstrumentStore(controller.InMemStore())
		ctrl := controller.New(store, worker.Config{
			FreezeBonusOnPause: config.FreezeBonusOnPause,
			EventBuffer:        config.EventBuffer,
		}, config.MaxGames)

		srv := api.New(apiListen, ctrl)
		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			<-sig
			log.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Warn("api shutdown failed")
			}
		}()

		log.WithFields(log.Fields{
			"listen":   apiListen,
			"maxGames": config.MaxGames,
		}).Info("snake api serving")
		srv.WaitForExit()
		ctrl.Close()
	},
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
