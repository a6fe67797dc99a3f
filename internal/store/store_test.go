package store

import (
	"sync"
	"testing"
	"time"
)

func record(name string) Record {
	return Record{
		ArchivePath: "/data/" + name,
		ArchiveName: name,
		MountPoint:  "/mnt/" + name,
		OriginalDir: "/data",
		CreatedAt:   time.Unix(1700000000, 0),
	}
}

func TestGetSetDelete(t *testing.T) {
	s := New()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("Get on empty store reported a record")
	}

	s.Set("a.zip.tmp1", record("a.zip"))
	rec, ok := s.Get("a.zip.tmp1")
	if !ok {
		t.Fatal("record not found after Set")
	}
	if rec.ArchiveName != "a.zip" || rec.MountPoint != "/mnt/a.zip" {
		t.Errorf("unexpected record: %+v", rec)
	}

	s.Delete("a.zip.tmp1")
	if _, ok := s.Get("a.zip.tmp1"); ok {
		t.Fatal("record still present after Delete")
	}

	// Deleting an untracked id is a no-op
	s.Delete("never-there")
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.Set("a.zip.tmp1", record("a.zip"))
	s.Set("b.tar.tmp2", record("b.tar"))

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d records, want 2", len(snap))
	}

	// Mutating the snapshot must not leak into the store
	delete(snap, "a.zip.tmp1")
	snap["c.rar.tmp3"] = record("c.rar")

	if s.Len() != 2 {
		t.Errorf("store has %d records after snapshot mutation, want 2", s.Len())
	}
	if _, ok := s.Get("a.zip.tmp1"); !ok {
		t.Error("record removed from store by snapshot mutation")
	}
	if _, ok := s.Get("c.rar.tmp3"); ok {
		t.Error("record added to store by snapshot mutation")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := string(rune('a'+n)) + ".zip.tmp1"
				s.Set(id, record("x.zip"))
				s.Get(id)
				s.Snapshot()
				s.Delete(id)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Errorf("store has %d records after balanced set/delete, want 0", s.Len())
	}
}
