package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"multicurrency-bank/config"
	"multicurrency-bank/internal/adapter/cli"
	"multicurrency-bank/internal/core/domain"
	"multicurrency-bank/internal/service"
	"multicurrency-bank/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	catalog := make([]domain.Currency, 0, len(cfg.Currencies))
	for _, c := range cfg.Currencies {
		catalog = append(catalog, domain.Currency{
			Code:   domain.Code(c.Code),
			Name:   c.Name,
			Symbol: c.Symbol,
		})
	}
	if len(catalog) == 0 {
		log.Fatal().Msg("currency catalog is empty")
	}
	registry := domain.NewRegistry(catalog)

	ledger := service.NewLedgerService(
		registry,
		service.NewArgon2PINHasher(),
		service.Policy{
			AllowNegativeOpening: cfg.Policy.AllowNegativeOpening,
			AllowNegativeDeposit: cfg.Policy.AllowNegativeDeposit,
		},
		log,
	)

	log.Info().
		Int("currencies", len(catalog)).
		Bool("allow_negative_opening", cfg.Policy.AllowNegativeOpening).
		Bool("allow_negative_deposit", cfg.Policy.AllowNegativeDeposit).
		Msg("ledger ready")

	shell := cli.New(ledger, registry, os.Stdin, os.Stdout, log)
	shell.Run(context.Background())

	log.Info().Msg("session ended")
}
