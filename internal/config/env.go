package config

import (
	"github.com/spf13/viper"

	"github.com/verte-zerg/bloodroll/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. BLOODROLL_DB.
const EnvPrefix = "BLOODROLL"

const (
	envDB       = "db"
	envLogFile  = "log_file"
	envLogLevel = "log_level"
)

// DefaultLogLevel is used when no layer sets a level.
const DefaultLogLevel = "info"

// Overrides is one configuration layer. Nil fields leave lower layers alone.
type Overrides struct {
	DBPath   *string
	LogFile  *string
	LogLevel *string
}

// LoadEnv reads BLOODROLL_DB, BLOODROLL_LOG_FILE and BLOODROLL_LOG_LEVEL.
func LoadEnv() Overrides {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{envDB, envLogFile, envLogLevel} {
		_ = v.BindEnv(key)
	}
	return Overrides{
		DBPath:   lookup(v, envDB),
		LogFile:  lookup(v, envLogFile),
		LogLevel: lookup(v, envLogLevel),
	}
}

func lookup(v *viper.Viper, key string) *string {
	if !v.IsSet(key) {
		return nil
	}
	s := v.GetString(key)
	return &s
}

// Defaults returns the built-in settings.
func Defaults() model.Config {
	return model.Config{
		DBPath:   DefaultDBPath(),
		LogFile:  DefaultLogPath(),
		LogLevel: DefaultLogLevel,
	}
}

// Merge layers overrides onto base. Later layers win.
func Merge(base model.Config, layers ...Overrides) model.Config {
	for _, o := range layers {
		apply(&base.DBPath, o.DBPath)
		apply(&base.LogFile, o.LogFile)
		apply(&base.LogLevel, o.LogLevel)
	}
	return base
}

func apply(target, value *string) {
	if value == nil {
		return
	}
	*target = *value
}
