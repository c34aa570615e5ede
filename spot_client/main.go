package main

import (
	"flag"
	"fmt"
	"os"

	"spotdrop/apiclient"
	"spotdrop/config"
	"spotdrop/geocode"
	"spotdrop/session"
	"spotdrop/spotfeed"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer logFile.Close()
		log.Logger = zerolog.New(logFile).With().Timestamp().Logger()
	}
	switch cfg.Log.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	app := newApp(appDeps{
		cfg:      cfg,
		api:      apiclient.New(cfg.API.BaseURL, cfg.API.Timeout()),
		sessions: session.NewStore(cfg.Session.File),
		spots:    nil, // set below, needs the api client
		geo:      geocode.NewHTTPGeocoder(cfg.Geocoder.Endpoint, cfg.API.Timeout()),
	})
	app.deps.spots = spotfeed.NewService(app.deps.api)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return dir + "/spotdrop/config.yaml"
}
