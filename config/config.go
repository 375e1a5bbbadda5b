package config

import (
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of the session server.
var (
	MaxGames           = getEnvInt("MAX_GAMES", 100)
	InputRate          = rate.Limit(getEnvInt("INPUT_RPS", 20))
	InputBurst         = getEnvInt("INPUT_BURST", 5)
	EventBuffer        = getEnvInt("EVENT_BUFFER", 16)
	FreezeBonusOnPause = getEnvBool("FREEZE_BONUS_ON_PAUSE", false)
	LogLevel           = getEnvLevel("LOG_LEVEL", log.InfoLevel)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvBool(varName string, defaults bool) bool {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaults
	}
	return b
}

func getEnvLevel(varName string, defaults log.Level) log.Level {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	lvl, err := log.ParseLevel(val)
	if err != nil {
		return defaults
	}
	return lvl
}
