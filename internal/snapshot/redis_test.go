package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"

	"host-ledger/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg, err := config.LoadTest()
	if err != nil || cfg.TestRedisAddr == "" {
		t.Skip("skip redis test: TEST_REDIS_ADDR not set")
	}
	s := NewStore(&redis.Options{Addr: cfg.TestRedisAddr})
	if err := s.Client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skip redis test: %v", err)
	}
	return s
}

func TestSaveLoadDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	hostID := "test-host-roundtrip"
	defer s.Delete(ctx, hostID)

	if _, _, ok, err := s.Load(ctx, hostID); err != nil || ok {
		t.Fatalf("expected no snapshot, ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, hostID, []byte(`{"version":3}`), 3); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, version, ok, err := s.Load(ctx, hostID)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(blob) != `{"version":3}` || version != 3 {
		t.Fatalf("round trip wrong: %q v%d", blob, version)
	}
	if err := s.Delete(ctx, hostID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, ok, _ := s.Load(ctx, hostID); ok {
		t.Fatal("snapshot survived delete")
	}
}

func TestSaveRejectsStaleVersion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	hostID := "test-host-stale"
	defer s.Delete(ctx, hostID)

	if err := s.Save(ctx, hostID, []byte("v5"), 5); err != nil {
		t.Fatalf("save v5: %v", err)
	}
	if err := s.Save(ctx, hostID, []byte("v4"), 4); !errors.Is(err, ErrStaleSnapshot) {
		t.Fatalf("expected ErrStaleSnapshot for older version, got %v", err)
	}
	if err := s.Save(ctx, hostID, []byte("v5b"), 5); !errors.Is(err, ErrStaleSnapshot) {
		t.Fatalf("expected ErrStaleSnapshot for equal version, got %v", err)
	}
	if err := s.Save(ctx, hostID, []byte("v6"), 6); err != nil {
		t.Fatalf("save v6: %v", err)
	}
	blob, version, _, err := s.Load(ctx, hostID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(blob) != "v6" || version != 6 {
		t.Fatalf("expected v6 stored, got %q v%d", blob, version)
	}
}
