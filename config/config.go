package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/icodeforyou/fasce-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

type AppConfigDatabase struct {
	Path string
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigTariff struct {
	// Directory with GME extracts; price files are picked up by the
	// refresh task from its "prices" subdirectory
	DataDir string `mapstructure:"data_dir"`
	// Default reporting year in the GUI, 0 means the most recent year
	// found in the reference dataset
	Year int `mapstructure:"year"`
	// Header names of the price extracts, defaults match MGP files
	PriceDateColumn  *string `mapstructure:"price_date_column"`
	PriceHourColumn  *string `mapstructure:"price_hour_column"`
	PriceValueColumn *string `mapstructure:"price_value_column"`
	RunAt            string  `mapstructure:"run_at"`
}

func (t AppConfigTariff) GetPriceDateColumn() string {
	if t.PriceDateColumn == nil {
		return "Data"
	}
	return *t.PriceDateColumn
}

func (t AppConfigTariff) GetPriceHourColumn() string {
	if t.PriceHourColumn == nil {
		return "Ora"
	}
	return *t.PriceHourColumn
}

func (t AppConfigTariff) GetPriceValueColumn() string {
	if t.PriceValueColumn == nil {
		return "PUN"
	}
	return *t.PriceValueColumn
}

type AppConfigMeter struct {
	// When false the MQTT meter feed is not connected and consumption
	// aggregates come only from uploaded curve files
	Enabled  bool
	Host     string
	Port     int16
	Username string
	Password string
	// Topic the meter publishes quarter-hour readings on
	Topic string
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "UTC"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Database AppConfigDatabase
	Tariff   AppConfigTariff
	Meter    AppConfigMeter
	Gui      AppConfigGui
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
