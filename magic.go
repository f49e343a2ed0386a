package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// magicHeaderSize is how much of the file the signature database needs to
// see. 262 bytes covers the longest magic number filetype knows about.
const magicHeaderSize = 262

// magicTest is the second detection tier. Signature matching itself is
// delegated to the filetype library; this tier's own job is the fallback
// policy. Any failure along the way (unopenable file, short read, no
// signature hit) degrades to the built-in extension→MIME table rather than
// an error, and only when that also comes up empty does the tier decline.
func (t *FileTypeTester) magicTest(path string) *Result {
	f, err := os.Open(path)
	if err != nil {
		t.logger.Debug("magic test: open failed", "path", path, "err", err)
		return t.magicFallback(path)
	}
	defer f.Close()

	buf := make([]byte, magicHeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		t.logger.Debug("magic test: header read failed", "path", path, "err", err)
		return t.magicFallback(path)
	}

	kind, err := filetype.Match(buf[:n])
	if err != nil || kind == filetype.Unknown {
		return t.magicFallback(path)
	}

	mimeType := kind.MIME.Value
	return &Result{
		Matched:    true,
		Label:      fmt.Sprintf("%s data (%s)", strings.ToUpper(kind.Extension), mimeType),
		MIMELabel:  mimeType,
		Tier:       TierMagic,
		Extensions: []string{kind.Extension},
	}
}

// magicFallback consults the static extension→MIME table when the signature
// lookup has nothing to say.
func (t *FileTypeTester) magicFallback(path string) *Result {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType := mimeForExtension(ext)
	if mimeType == "" {
		return nil
	}
	return &Result{
		Matched:    true,
		Label:      "file of type " + mimeType,
		MIMELabel:  mimeType,
		Tier:       TierMagic,
		Extensions: []string{strings.TrimPrefix(ext, ".")},
	}
}
