package main

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Fixed labels for the special file kinds the filesystem tier recognizes.
const (
	labelDirectory     = "directory"
	labelEmptyDir      = "empty directory"
	labelUnreadableDir = "unreadable directory"
	labelSymlink       = "symbolic link"
	labelBlockDevice   = "block device"
	labelCharDevice    = "character device"
	labelFIFO          = "FIFO (named pipe)"
	labelSocket        = "socket"
	labelExecScript    = "executable script"
	labelExecFile      = "executable file"
)

// inodeMIMETypes is the fixed MIME mapping for file kinds that have no
// content-derived MIME type.
var inodeMIMETypes = map[string]string{
	labelDirectory:     "inode/directory",
	labelEmptyDir:      "inode/directory",
	labelUnreadableDir: "inode/directory",
	labelSymlink:       "inode/symlink",
	labelBlockDevice:   "inode/blockdevice",
	labelCharDevice:    "inode/chardevice",
	labelFIFO:          "inode/fifo",
	labelSocket:        "inode/socket",
}

// filesystemTest is the first detection tier. It classifies from path
// metadata alone: directory state, link and device bits, the executable bit
// plus shebang, and finally the extension table. Rules are evaluated top to
// bottom and the first applicable one wins. A nil return means this tier has
// no opinion and the chain moves on.
//
// info is the lstat (or, when dereferencing, stat) result the orchestrator
// already obtained; existence and probe errors are its problem, not ours.
func (t *FileTypeTester) filesystemTest(path string, info fs.FileInfo) *Result {
	mode := info.Mode()

	if mode.IsDir() {
		return t.classifyDirectory(path)
	}

	if mode&fs.ModeSymlink != 0 {
		// Only reachable with no-dereference active; otherwise the
		// orchestrator resolved the link before calling us.
		return &Result{Matched: true, Label: labelSymlink, MIMELabel: inodeMIMETypes[labelSymlink], Tier: TierFilesystem}
	}

	if special := specialFileLabel(mode); special != "" {
		return &Result{Matched: true, Label: special, MIMELabel: inodeMIMETypes[special], Tier: TierFilesystem}
	}

	if mode.IsRegular() && mode.Perm()&0o111 != 0 {
		interp, ok, err := readShebang(path)
		if err == nil {
			if ok {
				return &Result{
					Matched:     true,
					Label:       labelExecScript,
					MIMELabel:   scriptMIMEType(interp),
					Tier:        TierFilesystem,
					Interpreter: interp,
				}
			}
			return &Result{Matched: true, Label: labelExecFile, MIMELabel: "application/x-executable", Tier: TierFilesystem}
		}
		// Shebang unreadable: fall through and let the extension speak.
		t.logger.Debug("filesystem test: shebang read failed", "path", path, "err", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if entry, ok := t.extTable.Lookup(ext); ok {
		return &Result{
			Matched:    true,
			Label:      entry.Label,
			MIMELabel:  mimeForExtension(ext),
			Tier:       TierFilesystem,
			Extensions: entry.Canonical,
		}
	}

	return nil
}

// classifyDirectory reports a directory that is being classified itself
// (recursion off, or nothing beneath it to expand). Empty and unlistable
// directories get their own labels.
func (t *FileTypeTester) classifyDirectory(path string) *Result {
	label := labelDirectory
	entries, err := os.ReadDir(path)
	switch {
	case err != nil:
		label = labelUnreadableDir
	case len(entries) == 0:
		label = labelEmptyDir
	}
	return &Result{Matched: true, Label: label, MIMELabel: inodeMIMETypes[label], Tier: TierFilesystem}
}

// specialFileLabel maps device, pipe and socket mode bits to their labels.
func specialFileLabel(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeCharDevice != 0:
		return labelCharDevice
	case mode&fs.ModeDevice != 0:
		return labelBlockDevice
	case mode&fs.ModeNamedPipe != 0:
		return labelFIFO
	case mode&fs.ModeSocket != 0:
		return labelSocket
	}
	return ""
}

// readShebang reports whether the file starts with "#!" and, if so, the
// interpreter path from the rest of the first line.
func readShebang(path string) (interp string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	prefix := make([]byte, 2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		// Too short for a shebang; not an error worth surfacing.
		return "", false, nil
	}
	if prefix[0] != '#' || prefix[1] != '!' {
		return "", false, nil
	}

	line, _ := r.ReadString('\n')
	fields := strings.Fields(line)
	if len(fields) > 0 {
		interp = fields[0]
		// "#!/usr/bin/env python3" names the real interpreter second.
		if filepath.Base(interp) == "env" && len(fields) > 1 {
			interp = fields[1]
		}
	}
	return interp, true, nil
}

// scriptMIMEType builds the MIME label for an executable script from its
// interpreter, e.g. text/x-script.python3.
func scriptMIMEType(interp string) string {
	base := filepath.Base(interp)
	if base == "" || base == "." {
		return "text/x-script"
	}
	return "text/x-script." + base
}
