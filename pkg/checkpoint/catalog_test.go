package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirCatalog(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"u_00100.txt", "v_00100.txt",
		"u_00050.txt", "v_00050.txt",
		"u_00150.txt", // no v file
		"v_00200.txt", // no u file
		"notes.txt", "u_final.txt", "frame_00050.png",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "u_00300.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := DirCatalog{Dir: dir}.Checkpoints()
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2", entries)
	}
	if entries[0].Step != 50 || entries[1].Step != 100 {
		t.Errorf("steps = %d, %d, want 50, 100", entries[0].Step, entries[1].Step)
	}
	if entries[0].UPath != filepath.Join(dir, "u_00050.txt") || entries[0].VPath != filepath.Join(dir, "v_00050.txt") {
		t.Errorf("paths = %+v", entries[0])
	}
}

func TestDirCatalogMissingDir(t *testing.T) {
	if _, err := (DirCatalog{Dir: filepath.Join(t.TempDir(), "nope")}).Checkpoints(); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}

func TestParseStep(t *testing.T) {
	cases := map[string]int{"u_00050.txt": 50, "v_12345.txt": 12345, "00100.txt": -1, "u_.txt": -1, "u_12.dat": -1}
	for name, want := range cases {
		step, ok := ParseStep(name)
		if want < 0 {
			if ok {
				t.Errorf("ParseStep(%q) = %d, want failure", name, step)
			}
			continue
		}
		if !ok || step != want {
			t.Errorf("ParseStep(%q) = %d, %v, want %d", name, step, ok, want)
		}
	}
}
