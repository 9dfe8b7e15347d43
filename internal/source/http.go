package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// maxDocumentSize bounds a single downloaded entry.
const maxDocumentSize = 64 << 20

// HTTPFetcher downloads documents and keeps recent bodies in an expiring LRU
// so scheduled and on-demand runs of the same URL do not refetch.
type HTTPFetcher struct {
	Client *http.Client
	Logger *zap.Logger
	cache  *expirable.LRU[string, []byte]
}

func NewHTTPFetcher(timeout time.Duration, cacheSize int, ttl time.Duration, logger *zap.Logger) *HTTPFetcher {
	f := &HTTPFetcher{
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
	if cacheSize > 0 {
		f.cache = expirable.NewLRU[string, []byte](cacheSize, nil, ttl)
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(url); ok {
			f.Logger.Debug("Serving source from cache", zap.String("url", url))
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/xml, application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		f.Logger.Warn("Source returned non-200 status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}

	if f.cache != nil {
		f.cache.Add(url, body)
	}
	return body, nil
}
