package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPosition_NothingSaved(t *testing.T) {
	s := &Store{Dir: t.TempDir()}

	_, ok, err := s.LoadPosition()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected no saved position in a fresh directory")
	}
}

func TestSaveAndLoadPosition(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "winring")}

	want := Position{X: 1280, Y: 42}
	if err := s.SavePosition(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.LoadPosition()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected a saved position")
	}
	if got != want {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}
}

func TestSavePosition_Overwrites(t *testing.T) {
	s := &Store{Dir: t.TempDir()}

	if err := s.SavePosition(Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SavePosition(Position{X: 300, Y: 400}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, _, err := s.LoadPosition()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.X != 300 || got.Y != 400 {
		t.Fatalf("expected latest position, got %+v", got)
	}
}

func TestLoadPosition_CorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "position.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := &Store{Dir: dir}
	if _, _, err := s.LoadPosition(); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}
