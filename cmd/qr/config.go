package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// config holds option defaults read from the environment.
// Command line flags override them.
type config struct {
	Level  string `env:"QR_LEVEL" envDefault:"l"`
	Scale  uint   `env:"QR_SCALE" envDefault:"4"`
	Border int    `env:"QR_BORDER" envDefault:"4"`
	Format string `env:"QR_FORMAT"`
}

func loadConfig() (config, error) {
	var c config
	if err := env.Parse(&c); err != nil {
		return c, err
	}
	switch {
	case len(c.Level) != 1 || !strings.Contains("lmqhLMQH", c.Level):
		return c, fmt.Errorf("QR_LEVEL=%q: not one of l, m, q, h", c.Level)
	case c.Scale < 1 || c.Scale > 1<<12:
		return c, fmt.Errorf("QR_SCALE=%d: out of range", c.Scale)
	case c.Border < 0 || c.Border > 1<<10:
		return c, fmt.Errorf("QR_BORDER=%d: out of range", c.Border)
	case c.Format != "" && !slices.Contains(formats, c.Format):
		return c, fmt.Errorf("QR_FORMAT=%q: unknown format", c.Format)
	}
	c.Level = strings.ToLower(c.Level)
	return c, nil
}
