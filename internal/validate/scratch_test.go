package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScratch_WriteAndRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := newScratch(dir, "let a = 1\n")
	if err != nil {
		t.Fatalf("newScratch: %v", err)
	}
	if filepath.Dir(s.path) != dir || !strings.HasSuffix(s.path, ".swift") {
		t.Errorf("path = %q", s.path)
	}
	data, err := os.ReadFile(s.path)
	if err != nil || string(data) != "let a = 1\n" {
		t.Fatalf("contents = %q, err = %v", data, err)
	}
	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Error("file still exists")
	}
	// Second Remove is a no-op.
	if err := s.Remove(); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestScratch_EmptyCode(t *testing.T) {
	s, err := newScratch(t.TempDir(), "")
	if err != nil {
		t.Fatalf("newScratch: %v", err)
	}
	defer s.Remove()
	info, err := os.Stat(s.path)
	if err != nil || info.Size() != 0 {
		t.Errorf("size = %v, err = %v", info, err)
	}
}
