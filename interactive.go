package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// runInteractiveFinder walks the current directory and opens a fuzzy finder
// so the user can pick the paths to classify. The preview pane shows what the
// detection chain would say about the highlighted entry. Returns nil paths
// with nil error when the user aborts.
func runInteractiveFinder(tester *FileTypeTester, cfg Config) ([]string, error) {
	candidates := []string{}
	root := "."

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // keep scanning past unreadable entries
		}
		if path == root {
			return nil
		}
		if !cfg.ShowHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for files: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no files or directories found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select files to classify. Tab to multi-select, Enter to confirm."
			}
			path := candidates[i]
			res := tester.Detect(path)
			if res.Err != nil {
				return fmt.Sprintf("Path: %s\nERROR: %v", path, res.Err)
			}
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nType: %s", path, res.Label)
			}
			return fmt.Sprintf("Path: %s\nType: %s\nSize: %d bytes", path, res.Label, info.Size())
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort { // Esc or Ctrl+C
			fmt.Fprintln(os.Stderr, "Interactive selection aborted.")
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
