package grouper

import (
	"errors"

	"github.com/souhailaS/apistic/equivalence"
	"github.com/souhailaS/apistic/internal/options"
	"github.com/souhailaS/apistic/parser"
)

// Option configures a Grouper.
type Option func(*groupConfig) error

type groupConfig struct {
	comparator  Comparator
	logger      parser.Logger
	concurrency int
}

func applyOptions(opts ...Option) (*groupConfig, error) {
	cfg := &groupConfig{concurrency: 1}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = parser.OrNop(cfg.logger)
	if cfg.comparator == nil {
		cfg.comparator = equivalence.Default()
	}
	return cfg, nil
}

// WithComparator replaces the default structural comparator.
func WithComparator(c Comparator) Option {
	return func(cfg *groupConfig) error {
		if c == nil {
			return errors.New("grouper: comparator cannot be nil")
		}
		cfg.comparator = c
		return nil
	}
}

// WithLogger sets the logger used for grouping decisions and comparison
// failures.
func WithLogger(l parser.Logger) Option {
	return func(cfg *groupConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithConcurrency sets how many group comparisons may run at once for a
// single occurrence. Occurrences themselves are always processed in order.
// The default is 1.
func WithConcurrency(n int) Option {
	return func(cfg *groupConfig) error {
		if err := options.Positive("concurrency", n); err != nil {
			return err
		}
		cfg.concurrency = n
		return nil
	}
}
