package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// unknownLabel is the fixed fallback when every tier declines. It is a
// classification, not an error.
const unknownLabel = "unknown file type"

// FileTypeTester runs the detection chain: filesystem tests, then magic
// tests, then language tests, first match wins. The pattern list and
// extension table are loaded once at construction and shared read-only by
// every classification; a tester is safe to reuse across files.
type FileTypeTester struct {
	cfg      Config
	patterns []Pattern
	extTable *ExtensionTable
	logger   *slog.Logger
}

// NewFileTypeTester builds a tester for one invocation's configuration.
func NewFileTypeTester(cfg Config, logger *slog.Logger) *FileTypeTester {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileTypeTester{
		cfg:      cfg,
		patterns: newPatternList(),
		extTable: newExtensionTable(),
		logger:   logger,
	}
}

// Detect classifies a single path. Exactly one tier contributes the final
// label; partial answers from different tiers are never merged. Path errors
// (nonexistent, unreadable metadata, broken links) come back in Result.Err;
// a chain where every tier declines comes back as "unknown file type", which
// is a normal result.
func (t *FileTypeTester) Detect(path string) Result {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errorResult(fmt.Errorf("File or directory '%s' does not exist", path))
		}
		return errorResult(fmt.Errorf("cannot access '%s': %v", path, err))
	}

	// Dereference is a pre-step, not a tier: with -h off the chain runs
	// against the link target as if it had been named directly.
	target := path
	if info.Mode()&fs.ModeSymlink != 0 && !t.cfg.NoDereference {
		resolved, rerr := filepath.EvalSymlinks(path)
		if rerr != nil {
			return errorResult(fmt.Errorf("broken symbolic link '%s'", path))
		}
		target = resolved
		info, err = os.Stat(target)
		if err != nil {
			return errorResult(fmt.Errorf("cannot access '%s': %v", target, err))
		}
	}

	if res := t.filesystemTest(target, info); res != nil {
		t.logger.Debug("filesystem test matched", "path", path, "label", res.Label)
		return *res
	}

	// The remaining tiers read content; they only apply to regular files.
	if info.Mode().IsRegular() {
		if res := t.magicTest(target); res != nil {
			t.logger.Debug("magic test matched", "path", path, "label", res.Label)
			return *res
		}
		if res := t.languageTest(target); res != nil {
			t.logger.Debug("language test matched", "path", path, "label", res.Label)
			return *res
		}
	}

	t.logger.Debug("no test matched", "path", path)
	return Result{Matched: false, Label: unknownLabel, Tier: TierNone}
}

func errorResult(err error) Result {
	return Result{Tier: TierNone, Err: err}
}
