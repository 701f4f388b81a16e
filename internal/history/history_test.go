package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", DBFileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	file := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(file, make([]byte, 42), 0644); err != nil {
		t.Fatal(err)
	}

	base := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return base }
	if err := s.Record(ctx, "region", file); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base.Add(time.Second) }
	if err := s.Record(ctx, "monitor", filepath.Join(t.TempDir(), "gone.png")); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Kind != "monitor" || entries[0].Bytes != 0 {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if entries[1].Bytes != 42 || !entries[1].CreatedAt.Equal(base) {
		t.Errorf("oldest entry = %+v", entries[1])
	}

	limited, err := s.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("List(1) = %d entries, %v", len(limited), err)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return base.Add(-48 * time.Hour) }
	if err := s.Record(ctx, "region", "/old.png"); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base }
	if err := s.Record(ctx, "region", "/new.png"); err != nil {
		t.Fatal(err)
	}

	n, err := s.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d, want 1", n)
	}
	entries, _ := s.List(ctx, 0)
	if len(entries) != 1 || entries[0].Path != "/new.png" {
		t.Errorf("remaining = %+v", entries)
	}
}
