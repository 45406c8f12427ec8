package imageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const maxImageSize = 10 * 1024 * 1024 // 10 MB

var ErrNotImage = errors.New("response is not an image")

// Fetcher downloads image bytes
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// HTTPFetcher downloads images over HTTP and sniffs their real type
type HTTPFetcher struct {
	log    *zap.Logger
	client *http.Client
}

func NewHTTPFetcher(log *zap.Logger, client *http.Client) *HTTPFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{log: log, client: client}
}

// Fetch returns the body and its detected MIME type
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "remotetv/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body: %w", err)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}

	f.log.Debug("image fetched", zap.Int("bytes", len(data)), zap.String("mime", mt.String()), zap.String("url", url))
	return data, mt.String(), nil
}
