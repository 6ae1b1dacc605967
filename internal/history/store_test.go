package history

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *DBService {
	t.Helper()
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

// TestNewDBService verifies that the schema applies to a fresh database.
func TestNewDBService(t *testing.T) {
	svc := newTestStore(t)
	n, err := svc.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty history, got %d", n)
	}
}

// TestNewDBServiceFile verifies that a file-backed store persists entries
// across reopen.
func TestNewDBServiceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	svc, err := NewDBService(path)
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	if _, err := svc.Record(NewEntry("file", "3000", []byte{0x30, 0x00}, 1)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	svc, err = NewDBService(path)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer svc.Close()

	entries, err := svc.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "3000" || entries[0].Source != "file" {
		t.Errorf("unexpected entries after reopen: %+v", entries)
	}
}

// TestRecordAndGet verifies insert followed by lookup by id.
func TestRecordAndGet(t *testing.T) {
	svc := newTestStore(t)

	e := NewEntry("paste", "30 03 02 01 05", []byte{0x30, 0x03, 0x02, 0x01, 0x05}, 1)
	id, err := svc.Record(e)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == 0 || e.ID != id {
		t.Fatalf("expected id to be set, got id=%d e.ID=%d", id, e.ID)
	}

	got, err := svc.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != *e {
		t.Errorf("expected %+v, got %+v", e, got)
	}
	if len(got.Digest) != 64 {
		t.Errorf("expected sha256 hex digest, got %q", got.Digest)
	}

	_, err = svc.Get(id + 100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestRecordDeduplicates verifies that the same decoded bytes refresh the
// existing entry instead of adding another.
func TestRecordDeduplicates(t *testing.T) {
	svc := newTestStore(t)
	data := []byte{0x05, 0x00}

	first := NewEntry("paste", "0500", data, 1)
	first.CreatedAt = 100
	id1, err := svc.Record(first)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	second := NewEntry("stdin", "BQA=", data, 1)
	second.CreatedAt = 200
	id2, err := svc.Record(second)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if id1 != id2 {
		t.Errorf("expected same id, got %d and %d", id1, id2)
	}
	n, _ := svc.Count()
	if n != 1 {
		t.Errorf("expected 1 entry, got %d", n)
	}

	got, err := svc.Get(id1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Text != "BQA=" || got.Source != "stdin" || got.CreatedAt != 200 {
		t.Errorf("expected refreshed entry, got %+v", got)
	}
}

// TestRecentOrderAndLimit verifies newest-first ordering.
func TestRecentOrderAndLimit(t *testing.T) {
	svc := newTestStore(t)

	for i := 1; i <= 5; i++ {
		e := NewEntry("paste", "02010"+string(rune('0'+i)), []byte{0x02, 0x01, byte(i)}, 1)
		e.CreatedAt = int64(i * 1000)
		if _, err := svc.Record(e); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	entries, err := svc.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []int64{5000, 4000, 3000} {
		if entries[i].CreatedAt != want {
			t.Errorf("entry %d: expected created_at=%d, got %d", i, want, entries[i].CreatedAt)
		}
	}
}

// TestPruneAndClear verifies retention and wipe.
func TestPruneAndClear(t *testing.T) {
	svc := newTestStore(t)

	for i := 0; i < 4; i++ {
		e := NewEntry("paste", "x", []byte{byte(i)}, 1)
		e.CreatedAt = int64(i + 1)
		if _, err := svc.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	if err := svc.Prune(2); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	entries, _ := svc.Recent(10)
	if len(entries) != 2 || entries[0].CreatedAt != 4 || entries[1].CreatedAt != 3 {
		t.Errorf("expected the two newest entries to survive, got %+v", entries)
	}

	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	n, _ := svc.Count()
	if n != 0 {
		t.Errorf("expected empty history after Clear, got %d", n)
	}
}
