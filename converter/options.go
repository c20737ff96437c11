package converter

import (
	"errors"

	"github.com/souhailaS/apistic/parser"
)

// Option configures a Normalizer
type Option func(*normalizeConfig) error

type normalizeConfig struct {
	converter Converter
	logger    parser.Logger
}

func applyOptions(opts ...Option) (*normalizeConfig, error) {
	cfg := &normalizeConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = parser.OrNop(cfg.logger)
	if cfg.converter == nil {
		c := New()
		c.Logger = cfg.logger
		cfg.converter = c
	}
	return cfg, nil
}

// WithConverter replaces the default Swagger 2.0 converter.
func WithConverter(c Converter) Option {
	return func(cfg *normalizeConfig) error {
		if c == nil {
			return errors.New("converter: converter cannot be nil")
		}
		cfg.converter = c
		return nil
	}
}

// WithLogger sets the logger used to report conversion failures.
func WithLogger(l parser.Logger) Option {
	return func(cfg *normalizeConfig) error {
		cfg.logger = l
		return nil
	}
}
