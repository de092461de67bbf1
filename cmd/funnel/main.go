package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/brunovidal/funnel/internal/cli"
	"github.com/brunovidal/funnel/internal/config"
	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/engine"
	"github.com/brunovidal/funnel/internal/logger"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/brunovidal/funnel/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment)

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	budgetRepo := repository.NewSQLiteBudgetRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	prospectRepo := repository.NewSQLiteProspectRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	amounts := domain.NewAmountFormatter(cfg.Locale, cfg.CurrencySymbol)

	// Every successful write lands on the bus so the engine re-evaluates
	// without waiting for the next cron tick.
	bus := engine.NewBus()
	notify := func(collection, tenantID string) {
		bus.Publish(engine.Event{Collection: collection, TenantID: tenantID})
	}

	alertSvc := service.NewAlertService(budgetRepo, clientRepo, reminderRepo)

	app := &cli.App{
		Budgets:   service.NewBudgetService(budgetRepo, uow, amounts, notify),
		Reminders: service.NewReminderService(reminderRepo, notify),
		Clients:   service.NewClientService(clientRepo, notify),
		Prospects: service.NewProspectService(prospectRepo, uow, notify),
		Alerts:    alertSvc,
		Engine:    engine.New(alertSvc, bus, cfg.TenantID, log),

		Amounts:  amounts,
		Log:      log,
		TenantID: cfg.TenantID,
		OwnerID:  cfg.OwnerID,
		CronSpec: cfg.CronSpecReevaluate,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
