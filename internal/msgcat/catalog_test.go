package msgcat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRender_Embedded(t *testing.T) {
	c := MustNew()
	got, err := c.Render("history.entry", map[string]string{"Side": "White", "Notation": "e4"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "White: e4" {
		t.Fatalf("got %q", got)
	}
	// second call hits the parsed cache
	if again, _ := c.Render("history.entry", map[string]string{"Side": "Black", "Notation": "e5"}); again != "Black: e5" {
		t.Fatalf("cached render = %q", again)
	}
}

func TestRender_MissingKeyAndData(t *testing.T) {
	c := MustNew()
	if _, err := c.Render("nope.nothing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := c.Render("history.entry", map[string]string{"Side": "White"}); err == nil {
		t.Fatalf("expected missingkey error")
	}
}

func TestNew_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("history:\n  empty: \"Nothing yet\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, _ := c.Render("history.empty", nil); got != "Nothing yet" {
		t.Fatalf("override not applied: %q", got)
	}
	if !c.Has("board.title") {
		t.Fatalf("embedded keys lost after override")
	}
}

func TestNew_DuplicateOverride(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("board:\n  title: \"X\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestNew_RejectsNonStringLeaf(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("board:\n  size: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected unsupported value error")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := MustNew().Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
