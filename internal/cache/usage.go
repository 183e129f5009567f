// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/redis/go-redis/v9"

	"lessonpress/internal/models"
)

// usageKeyPrefix prefixes one hash per block type: variant -> count.
const usageKeyPrefix = "usage:"

// UsageCounter tallies how often each template variant is rendered for
// new or edited blocks.
type UsageCounter struct {
	client *redis.Client
}

// NewUsageCounter creates a counter backed by the given Valkey client.
func NewUsageCounter(client *redis.Client) *UsageCounter {
	return &UsageCounter{client: client}
}

// Record bumps the count for one (block type, variant) pair. Failures are
// logged and swallowed.
func (u *UsageCounter) Record(ctx context.Context, blockType models.BlockType, variant string) {
	if variant == "" {
		return
	}
	if err := u.client.HIncrBy(ctx, usageKeyPrefix+string(blockType), variant, 1).Err(); err != nil {
		slog.Warn("usage counter record error", "block_type", blockType, "variant", variant, "error", err)
	}
}

// Counts returns the raw tallies for every known block type.
func (u *UsageCounter) Counts(ctx context.Context) (map[models.BlockType]map[string]int64, error) {
	pipe := u.client.Pipeline()
	cmds := make(map[models.BlockType]*redis.MapStringStringCmd, len(models.BlockTypes))
	for _, bt := range models.BlockTypes {
		cmds[bt] = pipe.HGetAll(ctx, usageKeyPrefix+string(bt))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("usage counts: %w", err)
	}

	out := make(map[models.BlockType]map[string]int64, len(cmds))
	for bt, cmd := range cmds {
		counts := make(map[string]int64)
		for variant, raw := range cmd.Val() {
			var n int64
			if _, err := fmt.Sscan(raw, &n); err == nil && n > 0 {
				counts[variant] = n
			}
		}
		out[bt] = counts
	}
	return out, nil
}

// Snapshot returns the variants seen at least once per block type, sorted.
// The result converts directly to an analyzer ledger.
func (u *UsageCounter) Snapshot(ctx context.Context) (map[models.BlockType][]string, error) {
	counts, err := u.Counts(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[models.BlockType][]string, len(counts))
	for bt, variants := range counts {
		ids := make([]string, 0, len(variants))
		for id := range variants {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		out[bt] = ids
	}
	return out, nil
}

// Reset clears every counter.
func (u *UsageCounter) Reset(ctx context.Context) error {
	keys := make([]string, 0, len(models.BlockTypes))
	for _, bt := range models.BlockTypes {
		keys = append(keys, usageKeyPrefix+string(bt))
	}
	if err := u.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("usage reset: %w", err)
	}
	return nil
}
