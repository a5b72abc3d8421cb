package main

import (
	"fmt"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/client"
	"github.com/federico588/biblioteca-tui/internal/config"
	"github.com/federico588/biblioteca-tui/internal/logger"
	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("biblioteca-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create backend gateway")
	}

	store := session.NewStore(cfg.Session.CachePath)
	center := notify.NewCenter()
	services := service.New(gateway, store, cfg.App.PageSize)

	ui, err := tui.New(services, store, center, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(gateway, services, store, center, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
