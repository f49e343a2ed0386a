package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	gitignore "github.com/monochromegane/go-gitignore"
)

// expandQueued turns one queue entry into the entries actually classified.
// Directory arguments expand (recursion is on by default) into their sorted,
// flat file contents; everything else passes through untouched. A directory
// that expands to nothing stays in the queue as itself so it still produces
// its own "empty directory"/"unreadable directory" line — every argument
// yields at least one output line.
func expandQueued(q queuedPath, cfg Config, logger *slog.Logger) []queuedPath {
	if !cfg.Recursive {
		return []queuedPath{q}
	}

	info, err := os.Lstat(q.path)
	if err != nil {
		// Let Detect produce the error line.
		return []queuedPath{q}
	}

	isDir := info.IsDir()
	walkRoot := q.path
	if !isDir && info.Mode()&fs.ModeSymlink != 0 && !cfg.NoDereference {
		// A symlink argument pointing at a directory expands too, but only
		// when dereferencing; otherwise it is classified as a link. WalkDir
		// does not follow a symlink root, so walk the resolved target and
		// re-anchor results under the argument as given.
		if st, serr := os.Stat(q.path); serr == nil && st.IsDir() {
			if resolved, rerr := filepath.EvalSymlinks(q.path); rerr == nil {
				isDir = true
				walkRoot = resolved
			}
		}
	}
	if !isDir {
		return []queuedPath{q}
	}

	files := walkDirectory(walkRoot, cfg, logger)
	if len(files) == 0 {
		return []queuedPath{q}
	}

	out := make([]queuedPath, 0, len(files))
	for _, f := range files {
		if walkRoot != q.path {
			if rel, rerr := filepath.Rel(walkRoot, f); rerr == nil {
				f = filepath.Join(q.path, rel)
			}
		}
		out = append(out, queuedPath{path: f, separator: q.separator})
	}
	return out
}

// walkDirectory recursively collects the classifiable entries under root:
// regular files and symlinks, minus hidden entries (unless --hidden) and
// .gitignore matches (unless --no-ignore). The result is sorted so output
// order is stable regardless of directory iteration order.
func walkDirectory(root string, cfg Config, logger *slog.Logger) []string {
	var files []string
	var ignoreMatcher gitignore.IgnoreMatcher

	if !cfg.NoIgnore {
		// Only the root-level .gitignore is honored; nested ignore files
		// would need a git-aware walker.
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				logger.Debug("could not parse .gitignore", "path", gitIgnorePath, "err", err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Report and continue; unreadable subtrees should not sink
			// the rest of the walk.
			logger.Debug("walk error", "path", path, "err", err)
			return nil
		}

		if path == root {
			return nil
		}

		isDir := d.IsDir()

		if !cfg.ShowHidden && isHidden(d.Name()) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if ignoreMatcher != nil {
			relPath, _ := filepath.Rel(root, path)
			if ignoreMatcher.Match(relPath, isDir) {
				if isDir {
					return fs.SkipDir
				}
				return nil
			}
		}

		if isDir {
			return nil
		}

		// Regular files and symlinks are classified; device nodes, pipes
		// and sockets found mid-walk are skipped (naming them directly
		// still works).
		if d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0 {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		logger.Debug("walk aborted", "root", root, "err", err)
	}

	sort.Strings(files)
	return files
}

// isHidden checks if a file name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	base := filepath.Base(name)
	return len(base) > 0 && base[0] == '.'
}
