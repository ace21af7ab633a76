package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/logging"
	"github.com/icodeforyou/fasce-go/meter"
	"github.com/icodeforyou/fasce-go/task"
	"github.com/icodeforyou/fasce-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("fasce is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	cache := database.NewYearCache(db)
	cal := holiday.NewCalendar()
	buffer := meter.NewBuffer()

	if cnfg.Meter.Enabled {
		m := meter.New(
			cnfg.Meter.Host,
			cnfg.Meter.Port,
			cnfg.Meter.Username,
			cnfg.Meter.Password,
			cnfg.Meter.Topic)
		m.OnReading = buffer.Add
		m.OnInactivity = func() {
			m.Disconnect()
			exitWithError(logger, fmt.Errorf("meter mqtt traffic is dead, terminating..."))
		}

		if isDevMode() {
			logger.Info("dev mode, skipping meter connection")
		} else {
			if err := m.Connect(); err != nil {
				panic(fmt.Sprintf("meter connection error: %v", err))
			}
			defer m.Disconnect()
		}
	} else {
		logger.Info("meter feed disabled, consumption comes from uploads only")
	}

	// The refresh task is constructed before the server it notifies;
	// the notifier binds the server once it exists.
	notifier := &www.RefreshNotifier{}

	tasks := task.NewTasks(db, cache, buffer, notifier.Notify, cnfg)
	server := www.StartServer(db, cache, cal, tasks, cnfg)
	notifier.Bind(server)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("main context done")
				return
			case sig := <-sigCh:
				logger.Info("received signal", slog.Any("signal", sig))
				cancel()
			}
		}
	}()

	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	if syncer, ok := logger.Handler().(interface{ Sync() error }); ok {
		if syncErr := syncer.Sync(); syncErr != nil {
			logger.Error("failed to flush logger", slog.Any("error", syncErr))
		}
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
