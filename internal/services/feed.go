// internal/services/feed.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/javajoker/orders-backend/internal/config"
	"github.com/javajoker/orders-backend/internal/utils"
)

// CatalogFeed is the YAML document a partner publishes to describe their price list.
type CatalogFeed struct {
	Shop       string         `yaml:"shop" validate:"required,max=50"`
	Categories []FeedCategory `yaml:"categories" validate:"dive"`
	Goods      []FeedGood     `yaml:"goods" validate:"dive"`
}

type FeedCategory struct {
	ID   uint   `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required,max=40"`
}

type FeedGood struct {
	ID         int64                     `yaml:"id" validate:"required"`
	Category   uint                      `yaml:"category" validate:"required"`
	Model      string                    `yaml:"model" validate:"max=80"`
	Name       string                    `yaml:"name" validate:"required,max=80"`
	Price      int64                     `yaml:"price" validate:"min=0"`
	PriceRRC   int64                     `yaml:"price_rrc" validate:"min=0"`
	Quantity   int                       `yaml:"quantity" validate:"min=0"`
	Parameters map[string]ParameterValue `yaml:"parameters"`
}

// ParameterValue keeps the literal text of a scalar, so 6.1 and "6.1" are the same value.
type ParameterValue string

func (p *ParameterValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: parameter value must be a scalar", node.Line)
	}
	*p = ParameterValue(node.Value)
	return nil
}

// ParseFeed decodes and validates a feed document.
func ParseFeed(r io.Reader) (*CatalogFeed, error) {
	var feed CatalogFeed
	if err := yaml.NewDecoder(r).Decode(&feed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FeedError{Reason: "document is empty"}
		}
		return nil, &FeedError{Reason: err.Error()}
	}

	if err := utils.ValidateStruct(&feed); err != nil {
		return nil, &FeedError{Reason: err.Error()}
	}

	categories := make(map[uint]bool, len(feed.Categories))
	for _, c := range feed.Categories {
		categories[c.ID] = true
	}
	for _, g := range feed.Goods {
		if !categories[g.Category] {
			return nil, &FeedError{Reason: fmt.Sprintf("good %d references unknown category %d", g.ID, g.Category)}
		}
		for name, value := range g.Parameters {
			if name == "" || utf8.RuneCountInString(name) > 40 || utf8.RuneCountInString(string(value)) > 100 {
				return nil, &FeedError{Reason: fmt.Sprintf("good %d has an invalid parameter %q", g.ID, name)}
			}
		}
	}

	return &feed, nil
}

// FeedFetcher downloads feeds from http(s) URLs and s3://bucket/key locations.
type FeedFetcher struct {
	client   *http.Client
	storage  *StorageService
	maxBytes int64
}

func NewFeedFetcher(cfg config.ImportConfig, storage *StorageService) *FeedFetcher {
	return &FeedFetcher{
		client:   &http.Client{Timeout: time.Duration(cfg.FetchTimeout) * time.Second},
		storage:  storage,
		maxBytes: cfg.MaxFeedBytes,
	}
}

// Fetch returns the raw feed body, refusing documents larger than the configured limit.
func (f *FeedFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	var body io.ReadCloser
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		body, err = f.fetchHTTP(ctx, u.String())
	case "s3":
		body, err = f.storage.Open(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFeedScheme, u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return f.readLimited(body)
}

func (f *FeedFetcher) fetchHTTP(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFeedFetch, resp.StatusCode)
	}

	return resp.Body, nil
}

func (f *FeedFetcher) readLimited(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, &FeedError{Reason: fmt.Sprintf("document exceeds %d bytes", f.maxBytes)}
	}
	return data, nil
}

func parseFeedBytes(data []byte) (*CatalogFeed, error) {
	return ParseFeed(bytes.NewReader(data))
}
