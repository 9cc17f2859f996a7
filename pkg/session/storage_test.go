package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStorage(path)

	if _, ok := s.Get(TokenKey); ok {
		t.Fatalf("expected empty storage")
	}

	if err := s.Set(TokenKey, "token123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(UserKey, `{"id":"1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh instance over the same file sees the data.
	reopened := NewFileStorage(path)
	if v, ok := reopened.Get(TokenKey); !ok || v != "token123" {
		t.Fatalf("token not persisted: %q", v)
	}

	reopened.Delete(TokenKey)
	if _, ok := reopened.Get(TokenKey); ok {
		t.Fatalf("expected token deleted")
	}
	if v, ok := reopened.Get(UserKey); !ok || v != `{"id":"1"}` {
		t.Fatalf("unrelated key lost: %q", v)
	}
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewFileStorage(path)
	if _, ok := s.Get(TokenKey); ok {
		t.Fatalf("corrupt file must read as empty")
	}

	// Writing recovers the file.
	if err := s.Set(TokenKey, "token123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := s.Get(TokenKey); !ok || v != "token123" {
		t.Fatalf("expected recovery after write: %q", v)
	}
}
