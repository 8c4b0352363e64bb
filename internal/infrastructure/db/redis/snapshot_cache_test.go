package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

type staticReader struct {
	summary *domain.AccountSummary
	reads   int
}

func (r *staticReader) FindSummaryByID(_ context.Context, _ string) (*domain.AccountSummary, error) {
	r.reads++
	s := *r.summary
	return &s, nil
}

func testSnapshotCache(t *testing.T) (*AccountSnapshotCache, *staticReader, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &staticReader{summary: &domain.AccountSummary{
		ID:     "acc-1",
		Status: domain.StatusApproved,
	}}
	return NewAccountSnapshotCache(client, source, zerolog.Nop()), source, mr
}

func TestAccountSnapshotCache_ServesCachedCopy(t *testing.T) {
	cache, source, _ := testSnapshotCache(t)
	ctx := context.Background()

	first, err := cache.FindSummaryByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if first.Status != domain.StatusApproved {
		t.Fatalf("expected Approved, got %s", first.Status)
	}

	// Within the TTL the source is not consulted again.
	source.summary.Status = domain.StatusRejected
	second, err := cache.FindSummaryByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if second.Status != domain.StatusApproved {
		t.Fatalf("expected cached Approved, got %s", second.Status)
	}
	if source.reads != 1 {
		t.Fatalf("expected one source read, got %d", source.reads)
	}
}

func TestAccountSnapshotCache_InvalidateMakesRejectionBite(t *testing.T) {
	cache, source, _ := testSnapshotCache(t)
	ctx := context.Background()

	if _, err := cache.FindSummaryByID(ctx, "acc-1"); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	// An admin rejects the account and drops the snapshot; the next read
	// must see Rejected, not the cached Approved copy.
	source.summary.Status = domain.StatusRejected
	cache.Invalidate(ctx, "acc-1")

	got, err := cache.FindSummaryByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("read after invalidate failed: %v", err)
	}
	if got.Status != domain.StatusRejected {
		t.Fatalf("stale snapshot survived invalidation: %s", got.Status)
	}
}

func TestAccountSnapshotCache_DegradesWhenRedisDown(t *testing.T) {
	cache, source, mr := testSnapshotCache(t)
	mr.Close()

	got, err := cache.FindSummaryByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("expected degraded read to succeed, got %v", err)
	}
	if got.ID != source.summary.ID {
		t.Fatalf("unexpected summary: %+v", got)
	}
}
