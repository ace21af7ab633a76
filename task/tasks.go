package task

import (
	"context"
	"log/slog"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/meter"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	RefreshTask     func()
	RollupTask      func()
	MaintenanceTask func()
}

func NewTasks(
	db *database.Database,
	cache *database.YearCache,
	buffer *meter.Buffer,
	onRefresh func(years []int),
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		RefreshTask:     NewRefreshTask(logger.With(slog.String("task", "refresh")), db, cache, onRefresh, cnfg.Tariff),
		RollupTask:      NewRollupTask(logger.With(slog.String("task", "rollup")), db, cache, buffer),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	runAt := t.cnfg.Tariff.RunAt
	if runAt == "" {
		runAt = "@daily"
	}
	_, err := t.cron.AddFunc(runAt, t.RefreshTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("@hourly", t.RollupTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
