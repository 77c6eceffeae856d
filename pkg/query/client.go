package query

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/starlines/starlines/pkg/bussystem"
	"github.com/starlines/starlines/pkg/normalise"
	"github.com/starlines/starlines/pkg/querycache"
)

// Per-query-type cache lifetimes.
const (
	TTLAutocomplete = 5 * time.Minute
	TTLCountries    = 30 * time.Minute
	TTLCities       = 15 * time.Minute
	TTLRoutes       = 10 * time.Minute
	TTLSeatData     = 2 * time.Minute
)

// Client wraps every provider search endpoint with caching, normalization
// and a typed response envelope. With Mock set it answers from a
// deterministic in-memory dataset through the exact same code paths.
type Client struct {
	transport bussystem.Transport
	cache     querycache.Cache
	lang      string
	mock      bool

	acMu     sync.Mutex
	acCancel context.CancelFunc
	acGen    uint64
}

type Options struct {
	Transport bussystem.Transport
	Cache     querycache.Cache
	Language  string
	Mock      bool
}

func NewClient(options Options) *Client {
	if options.Cache == nil {
		options.Cache = querycache.NewMemoryCache()
	}
	if options.Language == "" {
		options.Language = "en"
	}

	return &Client{
		transport: options.Transport,
		cache:     options.Cache,
		lang:      options.Language,
		mock:      options.Mock,
	}
}

// Response is the envelope every query resolves to. Callers branch on
// Success; errors never escape as panics or naked error returns.
type Response[T any] struct {
	Success   bool             `json:"success"`
	Data      T                `json:"data,omitempty"`
	Error     *bussystem.Error `json:"error,omitempty"`
	Cached    bool             `json:"cached,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func success[T any](data T, cached bool) Response[T] {
	return Response[T]{
		Success:   true,
		Data:      data,
		Cached:    cached,
		Timestamp: time.Now(),
	}
}

func failure[T any](err error) Response[T] {
	return Response[T]{
		Success:   false,
		Error:     bussystem.AsError(err),
		Timestamp: time.Now(),
	}
}

// run is the read-through cache path shared by every query: cache hit short
// circuits the fetch and is flagged Cached, a fetched result is written back
// with the query type's TTL.
func run[T any](ctx context.Context, c *Client, queryType string, params interface{}, ttl time.Duration, fetch func(context.Context) (T, error)) Response[T] {
	key := querycache.Key(queryType, params)

	if cached, ok := c.cache.Get(ctx, key); ok {
		var data T
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			return success(data, true)
		}

		// Unreadable entries are stale format leftovers; drop them.
		c.cache.Delete(ctx, key)
	}

	data, err := fetch(ctx)
	if err != nil {
		return failure[T](err)
	}

	if encoded, err := json.Marshal(data); err == nil {
		c.cache.Set(ctx, key, string(encoded), ttl)
	}

	return success(data, false)
}

// emptyOnUnrecognised maps the normalizer's unknown-container error to an
// empty result, which is how callers are meant to treat it.
func emptyOnUnrecognised[T any](records []T, err error) ([]T, error) {
	if errors.Is(err, normalise.ErrUnrecognisedShape) {
		return []T{}, nil
	}

	return records, err
}
