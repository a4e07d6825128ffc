package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "offerboard.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging writes logs/offerboard.log when debug is set and discards everything otherwise
// The terminal belongs to the UI, so nothing is ever logged to stdout or stderr
func setupLogging(debug bool) (*os.File, zerolog.Logger) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, zerolog.Nop()
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil, zerolog.Nop()
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("offerboard-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, zerolog.Nop()
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return f, logger
}
