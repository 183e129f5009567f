// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long an upload preview survives.
	DefaultPreviewTTL = time.Hour

	// MaxPreviewBytes caps what the preview store accepts.
	MaxPreviewBytes = 25 << 20
)

// ErrPreviewTooLarge is returned by Put for oversized payloads.
var ErrPreviewTooLarge = errors.New("preview exceeds size limit")

// PreviewStore keeps uploads that could not reach object storage so the
// editor can still show them for a while.
type PreviewStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewStore creates a preview store backed by the given Valkey client.
func NewPreviewStore(client *redis.Client, ttl time.Duration) *PreviewStore {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewStore{client: client, ttl: ttl}
}

// Put stores data and returns the key it can be fetched by.
func (ps *PreviewStore) Put(ctx context.Context, contentType string, data []byte) (string, error) {
	if len(data) > MaxPreviewBytes {
		return "", ErrPreviewTooLarge
	}
	key := uuid.NewString()
	pipe := ps.client.TxPipeline()
	pipe.HSet(ctx, previewKeyPrefix+key, "type", contentType, "data", data)
	pipe.Expire(ctx, previewKeyPrefix+key, ps.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("preview put: %w", err)
	}
	return key, nil
}

// Get returns a stored preview. found is false once it has expired.
func (ps *PreviewStore) Get(ctx context.Context, key string) (data []byte, contentType string, found bool, err error) {
	if _, perr := uuid.Parse(key); perr != nil {
		return nil, "", false, nil
	}
	vals, err := ps.client.HMGet(ctx, previewKeyPrefix+key, "type", "data").Result()
	if err != nil {
		return nil, "", false, fmt.Errorf("preview get: %w", err)
	}
	ct, _ := vals[0].(string)
	body, ok := vals[1].(string)
	if !ok {
		return nil, "", false, nil
	}
	return []byte(body), ct, true, nil
}
