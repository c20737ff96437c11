package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/souhailaS/apistic"
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/oaserrors"
)

// DefaultMaxFileSize is the largest input accepted when no limit is set.
const DefaultMaxFileSize int64 = 64 * 1024 * 1024

// Parser reads API descriptions into order-preserving documents.
type Parser struct {
	// ResolveRefs inlines local $ref targets after decoding
	ResolveRefs bool
	// ValidateStructure runs kin-openapi validation on OpenAPI 3.0 input.
	// Findings are reported as warnings.
	ValidateStructure bool
	// UserAgent is sent when fetching http(s) sources
	UserAgent string
	// HTTPClient fetches http(s) sources. A client with a 30 second
	// timeout is used when nil.
	HTTPClient *http.Client
	// Logger receives debug output. Nil disables logging.
	Logger Logger
	// MaxFileSize limits the size of the input in bytes. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64
}

// New creates a Parser with default settings
func New() *Parser {
	return &Parser{
		UserAgent: apistic.UserAgent(),
	}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult is a decoded API description plus metadata. Callers should
// treat Document as read-only: resolved $ref targets are shared between
// their referencing sites.
type ParseResult struct {
	// SourcePath is the file path or URL the document was read from, or a
	// synthetic name for readers and byte slices.
	SourcePath string
	// SourceFormat is the serialization of the input
	SourceFormat SourceFormat
	// Version is the raw value of the "openapi" or "swagger" marker
	Version string
	// OASVersion is the release line the marker maps to
	OASVersion OASVersion
	// Document is the decoded root object with source key order
	Document *document.Object
	// RefErrors lists references that were left unresolved
	RefErrors []*oaserrors.ReferenceError
	// Warnings contains non-fatal issues (unresolved refs, validation findings)
	Warnings []string
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// IsOAS2 reports whether the document is a Swagger 2.0 description.
func (pr *ParseResult) IsOAS2() bool { return pr.OASVersion == OASVersion20 }

// IsOAS3 reports whether the document is an OpenAPI 3.x description.
func (pr *ParseResult) IsOAS3() bool { return pr.OASVersion.IsOAS3() }

// Parse reads a document from a local file or an http(s) URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	start := time.Now()
	var data []byte
	var err error
	if isURL(specPath) {
		data, err = p.fetchURL(specPath)
	} else {
		data, err = p.readFile(specPath)
	}
	loadTime := time.Since(start)
	if err != nil {
		return nil, err
	}

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	res.SourcePath = specPath
	res.LoadTime = loadTime
	if f := detectFormatFromPath(specPath); f != SourceFormatUnknown {
		res.SourceFormat = f
	}
	return res, nil
}

// ParseReader reads a document from r. SourcePath is set to
// "ParseReader.json" or "ParseReader.yaml".
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: limit, Actual: int64(len(data))}
	}
	res, err := p.parseBytes(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes decodes data. SourcePath is set to "ParseBytes.json" or
// "ParseBytes.yaml".
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: limit, Actual: int64(len(data))}
	}
	res, err := p.parseBytes(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) parseBytes(data []byte, source string) (*ParseResult, error) {
	log := p.log().With("source", source)
	size := len(data)
	data = trimBOM(data)

	v, format, err := document.Decode(data)
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = source
		}
		return nil, fmt.Errorf("parser: failed to decode document: %w", err)
	}
	root, ok := document.AsObject(v)
	if !ok {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("document root must be an object, got %s", document.KindOf(v)),
		}
	}

	raw, ver, err := DetectVersion(root)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		SourceFormat: SourceFormat(format),
		Version:      raw,
		OASVersion:   ver,
		Document:     root,
		SourceSize:   int64(size),
		Warnings:     make([]string, 0),
	}
	log.Debug("decoded document", "format", format, "version", raw, "bytes", size)

	if p.ValidateStructure {
		result.Warnings = append(result.Warnings, p.validateStructure(data, ver)...)
	}

	if p.ResolveRefs {
		refErrs := document.ResolveLocalRefs(root)
		result.RefErrors = refErrs
		for _, re := range refErrs {
			result.Warnings = append(result.Warnings, re.Error())
			log.Debug("reference left unresolved", "ref", re.Ref, "circular", re.IsCircular, "external", re.IsExternal)
		}
	}

	result.Stats = GetDocumentStats(root)
	return result, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if limit := p.maxFileSize(); info.Size() > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: limit, Actual: info.Size()}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

func (p *Parser) fetchURL(rawURL string) ([]byte, error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid URL: %w", err)
	}
	ua := p.UserAgent
	if ua == "" {
		ua = apistic.UserAgent()
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json, application/yaml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parser: failed to fetch URL: HTTP %d", resp.StatusCode)
	}

	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: limit, Actual: int64(len(data))}
	}
	return data, nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func detectFormatFromPath(path string) SourceFormat {
	if isURL(path) {
		if i := strings.IndexAny(path, "?#"); i >= 0 {
			path = path[:i]
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// FormatBytes formats a byte count using binary units (KiB, MiB, ...).
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// trimBOM drops a UTF-8 byte order mark.
func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}
