package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/client"
	"github.com/MKhiriev/go-order-desk/internal/config"
	"github.com/MKhiriev/go-order-desk/internal/crypto"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/internal/store"
	"github.com/MKhiriev/go-order-desk/internal/tui"
	"github.com/MKhiriev/go-order-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("go-order-desk")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := adapter.NewHTTPGatewayAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create gateway adapter")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if closeErr := localStorage.Close(); closeErr != nil {
			log.Err(closeErr).Msg("close local storage")
		}
	}()

	services := service.NewClientServices(localStorage, gateway, crypto.NewPasswordHasher(cfg.App.PasswordSalt), log)

	ui, err := tui.New(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		stop()
		_ = localStorage.Close()
		os.Exit(1)
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
