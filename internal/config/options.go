// Package config defines the programmatic options of the embedded module.
// There is deliberately no environment or file loading: the module is
// embedded, and its host passes options directly.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/parish-booker/internal/persistence"
)

// DefaultDSN stores the database next to the working directory.
const DefaultDSN = "file:parish-booker.db"

// Options configures an application instance.
type Options struct {
	// DSN locates the SQLite database. Empty selects DefaultDSN.
	DSN string
	// PollInterval is the notification feed poll cadence. Non-positive
	// selects the 10 second default.
	PollInterval time.Duration
	// Seed overrides the first-run state. Nil selects persistence.DefaultSeed.
	Seed *persistence.SeedData
	// Logger receives structured logs. Nil selects slog.Default.
	Logger *slog.Logger
}

// Normalize applies defaults and validates the result.
func (o Options) Normalize() (Options, error) {
	if strings.TrimSpace(o.DSN) == "" {
		o.DSN = DefaultDSN
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 10 * time.Second
	}
	if o.Seed == nil {
		seed := persistence.DefaultSeed()
		o.Seed = &seed
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	invalid := make([]string, 0, 2)
	if o.Seed.Config.AppName == "" {
		invalid = append(invalid, "Seed.Config.AppName")
	}
	if len(o.Seed.Users) == 0 {
		invalid = append(invalid, "Seed.Users")
	}
	if len(invalid) > 0 {
		return Options{}, fmt.Errorf("invalid options: %s", strings.Join(invalid, ", "))
	}

	return o, nil
}
