package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/souhailaS/apistic/parser"
)

// specInput is the document a tool works on. Exactly one of File, URL, or
// Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or Swagger file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI or Swagger document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI or Swagger document (JSON or YAML)"`
}

// parseCache keeps parsed documents for the lifetime of the server. Each
// input kind has its own LRU so that URL entries can expire sooner than
// file and inline entries.
type parseCache struct {
	files   *expirable.LRU[string, *parser.ParseResult]
	urls    *expirable.LRU[string, *parser.ParseResult]
	content *expirable.LRU[string, *parser.ParseResult]
}

func newParseCache(c *serverConfig) *parseCache {
	return &parseCache{
		files:   expirable.NewLRU[string, *parser.ParseResult](c.CacheMaxSize, nil, c.CacheFileTTL),
		urls:    expirable.NewLRU[string, *parser.ParseResult](c.CacheMaxSize, nil, c.CacheURLTTL),
		content: expirable.NewLRU[string, *parser.ParseResult](c.CacheMaxSize, nil, c.CacheContentTTL),
	}
}

var specCache = newParseCache(cfg)

// bucket returns the LRU for the input kind.
func (c *parseCache) bucket(s specInput) *expirable.LRU[string, *parser.ParseResult] {
	switch {
	case s.File != "":
		return c.files
	case s.URL != "":
		return c.urls
	default:
		return c.content
	}
}

func (c *parseCache) size() int {
	return c.files.Len() + c.urls.Len() + c.content.Len()
}

func (c *parseCache) purge() {
	c.files.Purge()
	c.urls.Purge()
	c.content.Purge()
}

// cacheKey identifies a parse. Files are keyed by absolute path and
// modification time so edits invalidate the entry; inline content by its
// SHA-256. An empty key means the input cannot be cached.
func cacheKey(s specInput, resolveRefs bool) string {
	suffix := ":refs=" + strconv.FormatBool(resolveRefs)
	switch {
	case s.File != "":
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d%s", abs, info.ModTime().UnixNano(), suffix)
	case s.URL != "":
		return "url:" + s.URL + suffix
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]) + suffix
	}
	return ""
}

// validate checks that exactly one source is set and that inline content
// is within the configured size limit.
func (s specInput) validate() error {
	count := 0
	for _, set := range []bool{s.File != "", s.URL != "", s.Content != ""} {
		if set {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set APISTIC_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// resolve parses the input, serving repeated requests from the cache.
func (s specInput) resolve(resolveRefs bool) (*parser.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var key string
	if cfg.CacheEnabled {
		key = cacheKey(s, resolveRefs)
	}
	if key != "" {
		if cached, ok := specCache.bucket(s).Get(key); ok {
			return cached, nil
		}
	}

	opts := []parser.Option{parser.WithResolveRefs(resolveRefs)}
	switch {
	case s.File != "":
		opts = append(opts, parser.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, parser.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newGuardedClient()))
		}
	default:
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("inline"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.bucket(s).Add(key, result)
	}
	return result, nil
}
