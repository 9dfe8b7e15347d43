// Package source retrieves a UniProt document and turns it into the parsed
// form. References are http(s) URLs, s3://bucket/key locations or local paths.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/protgraph/internal/config"
	"github.com/agenthands/protgraph/internal/uniprot"
	"github.com/agenthands/protgraph/internal/xmldoc"
)

var (
	ErrUnsupportedSource = errors.New("unsupported source")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrFetch             = errors.New("failed to fetch source")
	ErrInvalidDocument   = errors.New("invalid document")
)

type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Loader dispatches a reference to the fetcher for its scheme. A nil fetcher
// makes that scheme unsupported. A non-empty AllowedHosts limits http(s)
// references to those hosts.
type Loader struct {
	HTTP         Fetcher
	S3           Fetcher
	File         Fetcher
	AllowedHosts []string
	Logger       *zap.Logger
}

func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	var f Fetcher
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if !l.hostAllowed(ref) {
			return nil, fmt.Errorf("%w: host not allowed in %q", ErrUnsupportedSource, ref)
		}
		f = l.HTTP
	case strings.HasPrefix(ref, "s3://"):
		f = l.S3
	case ref != "" && !strings.Contains(ref, "://"), strings.HasPrefix(ref, "file://"):
		f = l.File
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, ref)
	}

	data, err := f.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, ref, err)
	}
	l.logger().Debug("Fetched source document", zap.String("source", ref), zap.Int("bytes", len(data)))
	return data, nil
}

// Load fetches ref and parses it.
func (l *Loader) Load(ctx context.Context, ref string) (*uniprot.Document, error) {
	data, err := l.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) hostAllowed(ref string) bool {
	if len(l.AllowedHosts) == 0 {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return slices.Contains(l.AllowedHosts, strings.ToLower(u.Hostname()))
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Decode accepts either UniProt XML or its nested key/value form as JSON.
// Parse failures wrap ErrInvalidDocument.
func Decode(data []byte) (*uniprot.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrUnsupportedFormat)
	}

	switch trimmed[0] {
	case '<':
		converted, err := xmldoc.ConvertToJSON(bytes.NewReader(trimmed))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return parse(converted)
	case '{':
		return parse(trimmed)
	default:
		return nil, fmt.Errorf("%w: starts with %q", ErrUnsupportedFormat, trimmed[0])
	}
}

func parse(data []byte) (*uniprot.Document, error) {
	doc, err := uniprot.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

// NewLoader wires the HTTP, S3 and file fetchers from configuration, with no
// host restriction. S3 is left unsupported when no client can be built.
func NewLoader(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Loader {
	l := newRemote(ctx, cfg, logger)
	l.File = FileFetcher{}
	return l
}

// NewRemoteLoader is the loader for network callers: local paths are
// unsupported and http(s) sources are limited to source.allowed_hosts plus
// the host of the configured source url.
func NewRemoteLoader(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Loader {
	l := newRemote(ctx, cfg, logger)
	for _, h := range cfg.Source.AllowedHosts {
		l.AllowedHosts = append(l.AllowedHosts, strings.ToLower(h))
	}
	if u, err := url.Parse(cfg.Source.URL); err == nil && u.Hostname() != "" {
		l.AllowedHosts = append(l.AllowedHosts, strings.ToLower(u.Hostname()))
	}
	return l
}

func newRemote(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Loader {
	l := &Loader{
		HTTP:   NewHTTPFetcher(cfg.Source.HTTPTimeout(), cfg.Source.CacheSize, cfg.Source.CacheTTL(), logger),
		Logger: logger,
	}

	client, err := NewS3Client(ctx, cfg.S3)
	if err != nil {
		logger.Warn("S3 sources disabled", zap.Error(err))
		return l
	}
	l.S3 = &S3Fetcher{Client: client, Logger: logger}
	return l
}
