// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Tests that need PostgreSQL or Valkey are skipped when those are
// unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"lessonpress/internal/ai"
	"lessonpress/internal/cache"
	"lessonpress/internal/catalog"
	"lessonpress/internal/database"
	"lessonpress/internal/engine"
	"lessonpress/internal/normalize"
	"lessonpress/internal/store"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _ ai.Request) (string, error) {
	return m.response, m.err
}

// newTestRegistry returns a registry whose only provider is a mock named
// "test" answering with response or err.
func newTestRegistry(response string, err error) *ai.Registry {
	reg := ai.NewRegistry("test", map[string]ai.ProviderConfig{})
	reg.Register("test", &mockAIProvider{name: "test", response: response, err: err})
	return reg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "lessonpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "lessonpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 14, apart
// from the cache package tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       14,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"lesson:*", "preview:*", "usage:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB          *sql.DB
	Valkey      *redis.Client
	LessonStore *store.LessonStore
	BlockStore  *store.BlockStore
	Engine      *engine.Engine
	PageCache   *cache.PageCache
	Usage       *cache.UsageCounter
	Registry    *ai.Registry
	Lessons     *Lessons
	Public      *Public
}

// newTestEnv creates a complete test environment backed by PostgreSQL and
// Valkey. The AI registry answers every prompt with aiResponse.
func newTestEnv(t *testing.T, aiResponse string) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	lessonStore := store.NewLessonStore(db)
	blockStore := store.NewBlockStore(db)
	eng := engine.New()
	pageCache := cache.NewPageCache(vk, time.Minute)
	usage := cache.NewUsageCounter(vk)
	registry := newTestRegistry(aiResponse, nil)
	generator := ai.NewBlockGenerator(registry, catalog.Default())
	normalizer := normalize.New()

	return &testEnv{
		DB:          db,
		Valkey:      vk,
		LessonStore: lessonStore,
		BlockStore:  blockStore,
		Engine:      eng,
		PageCache:   pageCache,
		Usage:       usage,
		Registry:    registry,
		Lessons:     NewLessons(lessonStore, blockStore, normalizer, generator, pageCache, usage),
		Public:      NewPublic(eng, lessonStore, blockStore, pageCache),
	}
}

// withChiURLParams adds chi URL parameters, given as key/value pairs, to a
// request.
func withChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with v encoded as the JSON body. A string v
// is sent verbatim.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader
	switch b := v.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeResponse unmarshals the recorder body into dst.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeResponse(t, rec, &body)
	return body.Error
}

// cleanLessons removes test lessons by slug.
func cleanLessons(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM lessons WHERE slug = $1", s)
	}
}
