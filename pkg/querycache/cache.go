package querycache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the injectable query-result cache. Implementations are
// last-writer-wins per key; entries are idempotent fetch results so no
// cross-key consistency is needed.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// Key builds a stable cache key from a query type and its parameters. The
// parameters go through a map round-trip so key order is canonical no matter
// how the caller's struct lays its fields out.
func Key(queryType string, params interface{}) string {
	if params == nil {
		return queryType
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return queryType
	}

	var asMap map[string]interface{}
	if err := json.Unmarshal(encoded, &asMap); err != nil {
		return queryType + ":" + string(encoded)
	}

	sorted, _ := json.Marshal(asMap)
	return queryType + ":" + string(sorted)
}
