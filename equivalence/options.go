package equivalence

import (
	"github.com/souhailaS/apistic/internal/options"
)

// Option configures a Comparator.
type Option func(*Comparator) error

// New creates a Comparator. Without options it behaves like the
// package-level functions.
func New(opts ...Option) (*Comparator, error) {
	c := &Comparator{
		ignored:  keywordSet(DefaultIgnoredKeywords),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithIgnoredKeywords replaces the set of annotation keywords skipped at
// every schema level. Keys of "properties" and similar maps are names, not
// keywords, and are never skipped.
func WithIgnoredKeywords(keywords ...string) Option {
	return func(c *Comparator) error {
		c.ignored = keywordSet(keywords)
		return nil
	}
}

// WithExtensions makes "x-" extension keywords take part in the
// comparison. They are ignored by default.
func WithExtensions(compare bool) Option {
	return func(c *Comparator) error {
		c.withExtensions = compare
		return nil
	}
}

// WithMaxDepth sets how many nested sub-schema levels are compared before
// the comparison fails.
func WithMaxDepth(depth int) Option {
	return func(c *Comparator) error {
		if err := options.Positive("max depth", depth); err != nil {
			return err
		}
		c.maxDepth = depth
		return nil
	}
}

// WithAllDifferences makes Compare collect every difference instead of
// stopping at the first one.
func WithAllDifferences(all bool) Option {
	return func(c *Comparator) error {
		c.all = all
		return nil
	}
}
