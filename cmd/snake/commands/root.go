package commands

import (
	"fmt"
	"os"

	"github.com/battlesnakeio/solo/config"
	"github.com/battlesnakeio/solo/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake plays a game of snake in the terminal or serves games over http",
	Version: version.Version,
	PersistentPreRun: func(*cobra.Command, []string) {
		log.SetLevel(config.LogLevel)
	},
	Run: func(c *cobra.Command, args []string) {
		playCmd.Run(c, args)
	},
}

var (
	apiAddr string
	gameID  string
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:3005", "address of the api server")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(turnCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
