package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Entry is one checkpoint of a run.
type Entry struct {
	Step         int
	UPath, VPath string
}

// Catalog lists the checkpoints of a run.
type Catalog interface {
	Checkpoints() ([]Entry, error)
}

// DirCatalog lists u_<step>.txt / v_<step>.txt pairs in a directory. A u
// file without its v file is not listed.
type DirCatalog struct {
	Dir string
}

// Checkpoints returns the pairs sorted by step.
func (c DirCatalog) Checkpoints() ([]Entry, error) {
	dirEntries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	vSteps := make(map[int]string)
	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		step, ok := ParseStep(name)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(name, "u_"):
			entries = append(entries, Entry{Step: step, UPath: filepath.Join(c.Dir, name)})
		case strings.HasPrefix(name, "v_"):
			vSteps[step] = filepath.Join(c.Dir, name)
		}
	}

	paired := entries[:0]
	for _, e := range entries {
		if v, ok := vSteps[e.Step]; ok {
			e.VPath = v
			paired = append(paired, e)
		}
	}
	sort.Slice(paired, func(i, j int) bool { return paired[i].Step < paired[j].Step })
	return paired, nil
}

// ParseStep extracts the step from a checkpoint file name such as
// u_00150.txt.
func ParseStep(name string) (int, bool) {
	if !strings.HasSuffix(name, ".txt") {
		return 0, false
	}
	_, rest, found := strings.Cut(strings.TrimSuffix(name, ".txt"), "_")
	if !found || rest == "" {
		return 0, false
	}
	step, err := strconv.Atoi(rest)
	if err != nil || step < 0 {
		return 0, false
	}
	return step, true
}
