package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// --- small helpers ---

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)
	if got, want := bodyHash(data), hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

func Test_nowUTC(t *testing.T) {
	u := nowUTC()
	if u.Location() != time.UTC {
		t.Fatalf("nowUTC must be UTC, got %v", u.Location())
	}
	if d := time.Since(u); d < 0 || d > 2*time.Second {
		t.Fatalf("nowUTC too far from now: %v", d)
	}
}

func Test_buildKey(t *testing.T) {
	k := buildKey("POST", "/api/comisiones/calcular", 42, strings.Repeat("a", 32))
	want := "idemp:post:/api/comisiones/calcular:42:" + strings.Repeat("a", 32)
	if k != want {
		t.Fatalf("buildKey = %q, want %q", k, want)
	}
	if buildKey("POST", "/x", 1, "k") == buildKey("POST", "/x", 2, "k") {
		t.Fatalf("keys of different users must differ")
	}
}

func Test_validKey(t *testing.T) {
	valid := []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		strings.Repeat("a", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
	}
	for _, s := range valid {
		if !validKey(s) {
			t.Fatalf("validKey should accept %q", s)
		}
	}
	invalid := []string{
		"",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c880",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88", // version 9
	}
	for _, s := range invalid {
		if validKey(s) {
			t.Fatalf("validKey should reject %q", s)
		}
	}
}

func Test_parseRequestAt(t *testing.T) {
	sec := time.Now().UTC().Unix()
	ms := time.Now().UTC().UnixMilli()
	cases := []struct {
		raw  string
		want time.Time
	}{
		{strconv.FormatInt(sec, 10), time.Unix(sec, 0).UTC()},
		{strconv.FormatInt(ms, 10), time.UnixMilli(ms).UTC()},
		{"2025-09-05T10:00:00-05:00", time.Date(2025, 9, 5, 15, 0, 0, 0, time.UTC)},
		{"2025-09-05T03:00:00Z", time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)},
		{"2025-09-05T03:00:00.250Z", time.Date(2025, 9, 5, 3, 0, 0, 250_000_000, time.UTC)},
	}
	for _, tc := range cases {
		got, err := parseRequestAt(tc.raw)
		if err != nil {
			t.Fatalf("parseRequestAt(%q): %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parseRequestAt(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"", "not-a-time", "2025-09-05T10:00:00", "1736123456abc"} {
		if _, err := parseRequestAt(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func Test_provisionalSet_LoadEntry(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	ctx := context.Background()

	key := buildKey("POST", "/calcular", 1, strings.Repeat("a", 32))
	entry := idempEntry{
		InProgress: true,
		BodySHA256: bodyHash([]byte(`{"a":1}`)),
		Key:        strings.Repeat("a", 32),
		CreatedAt:  nowUTC(),
	}

	ok, err := provisionalSet(ctx, rdb, key, entry)
	if err != nil || !ok {
		t.Fatalf("provisionalSet 1: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional TTL not set correctly: %v", ttl)
	}

	ok, err = provisionalSet(ctx, rdb, key, entry)
	if err != nil || ok {
		t.Fatalf("provisionalSet 2: ok=%v err=%v", ok, err)
	}

	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("loadEntry err: %v", err)
	}
	if !got.InProgress || got.Key != entry.Key || got.BodySHA256 != entry.BodySHA256 {
		t.Fatalf("loaded entry mismatch: %+v vs %+v", got, entry)
	}

	if err := release(ctx, rdb, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists(key) {
		t.Fatalf("key should be gone after release")
	}
}

func Test_saveFinal_Load_TTL(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	ctx := context.Background()

	key := buildKey("POST", "/calcular", 1, strings.Repeat("a", 32))
	final := idempEntry{
		Code:       201,
		Body:       []byte(`{"ok":true}`),
		BodySHA256: bodyHash([]byte(`{"ok":true}`)),
		Key:        strings.Repeat("a", 32),
		CreatedAt:  nowUTC(),
	}

	ttlWant := 5 * time.Second
	if err := saveFinal(ctx, rdb, key, final, ttlWant); err != nil {
		t.Fatalf("saveFinal err: %v", err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > ttlWant {
		t.Fatalf("final TTL out of range: got %v want <= %v", ttl, ttlWant)
	}

	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("load after final err: %v", err)
	}
	if got.Code != 201 || string(got.Body) != `{"ok":true}` || got.InProgress {
		t.Fatalf("final entry mismatch: %+v", got)
	}
}
