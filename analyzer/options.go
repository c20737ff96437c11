package analyzer

import (
	"errors"
	"io"
	"net/http"

	"github.com/souhailaS/apistic/converter"
	"github.com/souhailaS/apistic/grouper"
	"github.com/souhailaS/apistic/internal/httputil"
	"github.com/souhailaS/apistic/internal/options"
	"github.com/souhailaS/apistic/oaserrors"
	"github.com/souhailaS/apistic/parser"
)

// Option configures an analysis run.
type Option func(*analyzeConfig) error

type analyzeConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	parsed   *parser.ParseResult

	parseOpts   []parser.Option
	resolveRefs bool
	logger      parser.Logger
	converter   converter.Converter
	comparator  grouper.Comparator
	concurrency int
	mediaTypes  []string
}

func applyOptions(opts ...Option) (*analyzeConfig, error) {
	cfg := &analyzeConfig{
		resolveRefs: true,
		concurrency: 1,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource(
		"analyzer: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithParseResult)",
		"analyzer: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	cfg.logger = parser.OrNop(cfg.logger)
	return cfg, nil
}

// WithFilePath analyzes a local file or an http(s) URL.
func WithFilePath(path string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader analyzes the document read from r.
func WithReader(r io.Reader) Option {
	return func(cfg *analyzeConfig) error {
		if r == nil {
			return errors.New("analyzer: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes analyzes an in-memory document.
func WithBytes(data []byte) Option {
	return func(cfg *analyzeConfig) error {
		if data == nil {
			return errors.New("analyzer: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithParseResult analyzes an already parsed document. Parser options
// have no effect.
func WithParseResult(result *parser.ParseResult) Option {
	return func(cfg *analyzeConfig) error {
		if result == nil || result.Document == nil {
			return errors.New("analyzer: parse result has no document")
		}
		cfg.parsed = result
		return nil
	}
}

// WithResolveRefs controls local $ref inlining before harvesting.
// Default: true
func WithResolveRefs(enabled bool) Option {
	return func(cfg *analyzeConfig) error {
		cfg.resolveRefs = enabled
		return nil
	}
}

// WithValidateStructure enables kin-openapi validation of OpenAPI 3.0
// input. Findings end up in Result.Warnings.
func WithValidateStructure(enabled bool) Option {
	return WithParserOptions(parser.WithValidateStructure(enabled))
}

// WithHTTPClient sets the client used to fetch URL sources.
func WithHTTPClient(client *http.Client) Option {
	return WithParserOptions(parser.WithHTTPClient(client))
}

// WithMaxFileSize limits the input size in bytes.
func WithMaxFileSize(size int64) Option {
	return WithParserOptions(parser.WithMaxFileSize(size))
}

// WithSourceName names a reader or byte slice source in the result.
func WithSourceName(name string) Option {
	return WithParserOptions(parser.WithSourceName(name))
}

// WithParserOptions passes extra options to the parser.
func WithParserOptions(opts ...parser.Option) Option {
	return func(cfg *analyzeConfig) error {
		cfg.parseOpts = append(cfg.parseOpts, opts...)
		return nil
	}
}

// WithLogger sets the logger shared by every stage.
func WithLogger(l parser.Logger) Option {
	return func(cfg *analyzeConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithConverter replaces the default Swagger 2.0 converter.
func WithConverter(c converter.Converter) Option {
	return func(cfg *analyzeConfig) error {
		if c == nil {
			return errors.New("analyzer: converter cannot be nil")
		}
		cfg.converter = c
		return nil
	}
}

// WithComparator replaces the default structural comparator.
func WithComparator(c grouper.Comparator) Option {
	return func(cfg *analyzeConfig) error {
		if c == nil {
			return errors.New("analyzer: comparator cannot be nil")
		}
		cfg.comparator = c
		return nil
	}
}

// WithConcurrency sets how many group comparisons may run in parallel.
// Default: 1
func WithConcurrency(n int) Option {
	return func(cfg *analyzeConfig) error {
		if err := options.Positive("concurrency", n); err != nil {
			return err
		}
		cfg.concurrency = n
		return nil
	}
}

// WithMediaTypes sets the preferred JSON media types for body lookup.
func WithMediaTypes(mediaTypes ...string) Option {
	return func(cfg *analyzeConfig) error {
		for _, mt := range mediaTypes {
			if !httputil.IsValidMediaType(mt) {
				return &oaserrors.ConfigError{Option: "media types", Value: mt, Message: "not a valid media type"}
			}
		}
		cfg.mediaTypes = mediaTypes
		return nil
	}
}
