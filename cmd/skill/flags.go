package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

var flagRunAddr string
var flagLogLevel string
var flagAppID string
var flagStatusURL string

func parseFlags() {
	flag.StringVar(&flagRunAddr, "a", ":8080", "address and port")
	flag.StringVar(&flagLogLevel, "l", "debug", "log level")
	flag.StringVar(&flagAppID, "i", "", "expected application id, empty disables the check")
	flag.StringVar(&flagStatusURL, "s", "https://api.tubealert.co.uk/now", "line status feed URL")
	flag.Parse()

	// best effort, real env vars win over .env
	_ = godotenv.Load()

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		flagRunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		flagLogLevel = envLogLevel
	}

	if envAppID := os.Getenv("APP_ID"); envAppID != "" {
		flagAppID = envAppID
	}

	if envStatusURL := os.Getenv("STATUS_URL"); envStatusURL != "" {
		flagStatusURL = envStatusURL
	}
}
