package config

import (
	"github.com/MonkyMars/gecho"
)

var logger *gecho.Logger

// InitializeLogger builds the process logger at the environment's level.
func InitializeLogger() *gecho.Logger {
	logger = NewLogger(true)
	return logger
}

func GetLogger() *gecho.Logger {
	if logger == nil {
		return InitializeLogger()
	}
	return logger
}

// NewLogger returns a logger at the configured level, with or without caller info.
func NewLogger(showCaller bool) *gecho.Logger {
	logLevel := gecho.ParseLogLevel(GetLogLevel())
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(logLevel)))
}
