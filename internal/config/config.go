package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production         bool          `env:"PRODUCTION" envDefault:"false"`
	Port               string        `env:"PORT" envDefault:"80"`
	PostgresUrl        string        `env:"POSTGRES_URL,required"`
	RedisUrl           string        `env:"REDIS_URL" envDefault:"redis:6379"`
	Timezone           string        `env:"TIMEZONE" envDefault:"UTC"`
	ReminderTickPeriod time.Duration `env:"REMINDER_TICK_PERIOD" envDefault:"5m"`
	ReminderTickBudget time.Duration `env:"REMINDER_TICK_BUDGET" envDefault:"4m"`
	ReminderMarkTTL    time.Duration `env:"REMINDER_MARK_TTL" envDefault:"48h"`
}

var conf config
var location *time.Location

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		panic(fmt.Sprintf("failed to load timezone %q: %v", conf.Timezone, err))
	}
	location = loc
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

// Location is the studio timezone in which occurrence start times are
// interpreted by the reminder tick.
func Location() *time.Location {
	return location
}

func ReminderTickPeriod() time.Duration {
	return conf.ReminderTickPeriod
}

func ReminderTickBudget() time.Duration {
	return conf.ReminderTickBudget
}

func ReminderMarkTTL() time.Duration {
	return conf.ReminderMarkTTL
}
