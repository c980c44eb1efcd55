package snapshot

import (
	"sync"
	"testing"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
)

func TestStore_EmptyState(t *testing.T) {
	s := NewStore()
	snap := s.Current()
	if snap == nil {
		t.Fatal("Current must never return nil")
	}
	if snap.Root != nil {
		t.Error("expected nil root before first publish")
	}
	if snap.Revision != 0 {
		t.Errorf("expected revision 0, got %d", snap.Revision)
	}
	if snap.Package != nil {
		t.Error("expected nil package before first publish")
	}
	if snap.Captured.IsZero() {
		t.Error("empty snapshot still carries a capture time")
	}
}

func TestStore_PublishIncrementsByOne(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 5; i++ {
		s.Publish(&model.Node{}, "com.example.app")
		if got := s.Current().Revision; got != uint64(i) {
			t.Fatalf("publish %d: expected revision %d, got %d", i, i, got)
		}
	}
}

func TestStore_PublishReplacesRoot(t *testing.T) {
	s := NewStore()
	first := &model.Node{Text: model.Str("first")}
	second := &model.Node{Text: model.Str("second")}

	s.Publish(first, "com.a")
	s.Publish(second, "com.b")

	snap := s.Current()
	if snap.Root != second {
		t.Error("expected the most recent root")
	}
	if snap.Package == nil || *snap.Package != "com.b" {
		t.Error("expected the most recent package id")
	}
}

func TestStore_ConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	s := NewStore()
	const publishes = 1000

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < publishes; i++ {
			s.Publish(&model.Node{}, "com.example.app")
		}
	}()
	go func() {
		defer wg.Done()
		var prev uint64
		for i := 0; i < publishes; i++ {
			snap := s.Current()
			if snap.Revision < prev {
				t.Errorf("revision went backwards: %d after %d", snap.Revision, prev)
				return
			}
			if snap.Revision > 0 && snap.Root == nil {
				t.Error("published snapshot missing its root")
				return
			}
			prev = snap.Revision
		}
	}()
	wg.Wait()

	if s.Revision() != publishes {
		t.Errorf("expected final revision %d, got %d", publishes, s.Revision())
	}
}

func TestStore_CloseReleasesRootKeepsRevision(t *testing.T) {
	s := NewStore()
	s.Publish(&model.Node{}, "com.example.app")
	s.Close()

	snap := s.Current()
	if snap.Root != nil {
		t.Error("expected root released after Close")
	}
	if s.Revision() != 1 {
		t.Error("revision must not reset on Close")
	}
}
