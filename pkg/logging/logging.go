package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Level int

const (
	LevelOff Level = iota
	LevelInfo
	LevelDebug
)

var (
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	level  = ParseLevel(os.Getenv("SCREL_DEBUG"), os.Getenv("SCREL_LOG_LEVEL"))
)

// ParseLevel derives the logging level from the SCREL_DEBUG and
// SCREL_LOG_LEVEL values. A non-empty debug value wins.
func ParseLevel(debug, name string) Level {
	if debug != "" {
		return LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "off", "none", "0":
		return LevelOff
	case "info", "1":
		return LevelInfo
	case "debug", "verbose", "2":
		return LevelDebug
	default:
		return LevelOff
	}
}

func Debugf(format string, args ...interface{}) {
	if level < LevelDebug {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

func Info(msg string, args ...any) {
	if level < LevelInfo {
		return
	}
	logger.Info(msg, args...)
}
