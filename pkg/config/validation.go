package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thomasrohde/badbasic/pkg/policy"
)

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be console or json, got %q", c.Log.Format))
	}

	if c.Run.Timeout != "" {
		d, err := time.ParseDuration(c.Run.Timeout)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("run.timeout: %w", err))
		case d < 0:
			errs = append(errs, fmt.Errorf("run.timeout: must not be negative"))
		}
	}

	if _, err := policy.Build(c.Policy); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
