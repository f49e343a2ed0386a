package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTester(cfg Config) *FileTypeTester {
	if cfg.Separator == "" {
		cfg.Separator = defaultSeparator
	}
	return NewFileTypeTester(cfg, nil)
}

func defaultTestConfig() Config {
	return Config{Separator: defaultSeparator, NoDereference: true, Recursive: true}
}

func writeFile(t *testing.T, dir, name string, content []byte, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, perm))
	return path
}

// A plain .py file with no shebang is answered by the filesystem tier's
// extension lookup before any content is read.
func TestDetectPythonByExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "script.py", []byte("print('hello')\n"), 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.Detect(path)

	require.NoError(t, res.Err)
	assert.True(t, res.Matched)
	assert.Equal(t, "Python script", res.Label)
	assert.Equal(t, TierFilesystem, res.Tier)

	line := formatLine(path, res, ":", Config{Verbose: true, Separator: ":"})
	assert.Equal(t, path+": Python script [Filesystem test]", line)
}

// Extension lookup precedes the magic tier: a real JPEG header behind a .jpg
// name never reaches signature matching.
func TestDetectExtensionBeatsMagic(t *testing.T) {
	dir := t.TempDir()
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
	path := writeFile(t, dir, "photo.jpg", jpeg, 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.Detect(path)

	require.NoError(t, res.Err)
	assert.Equal(t, "JPEG image", res.Label)
	assert.Equal(t, TierFilesystem, res.Tier)
	assert.Equal(t, []string{"jpeg", "jpg"}, res.Extensions)
}

// With no recognized extension and no signature, the language tier gets its
// turn.
func TestDetectHTMLByContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page", []byte("<!DOCTYPE html>\n<html>\n<body>hi</body>\n</html>\n"), 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.Detect(path)

	require.NoError(t, res.Err)
	assert.Equal(t, "HTML document", res.Label)
	assert.Equal(t, TierLanguage, res.Tier)
	assert.Equal(t, "[Language test]", res.Tier.Tag())
}

func TestDetectCharacterDevice(t *testing.T) {
	info, err := os.Stat("/dev/null")
	if err != nil || info.Mode()&fs.ModeCharDevice == 0 {
		t.Skip("/dev/null not available")
	}

	tester := newTestTester(defaultTestConfig())
	res := tester.Detect("/dev/null")

	require.NoError(t, res.Err)
	assert.Equal(t, "character device", res.Label)
	assert.Equal(t, TierFilesystem, res.Tier)

	line := formatLine("/dev/null", res, ":", Config{MIMEMode: true, Separator: ":"})
	assert.Equal(t, "/dev/null: inode/chardevice", line)
}

func TestDetectNonexistentPath(t *testing.T) {
	tester := newTestTester(defaultTestConfig())
	res := tester.Detect("/no/such/file.txt")

	require.Error(t, res.Err)
	assert.Equal(t, "File or directory '/no/such/file.txt' does not exist", res.Err.Error())
	assert.Equal(t, TierNone, res.Tier)
}

// Binary content with no extension and no signature falls through every tier
// to the fixed unknown label. That is a classification, not an error.
func TestDetectUnknownBinary(t *testing.T) {
	dir := t.TempDir()
	blob := make([]byte, 256)
	for i := range blob {
		blob[i] = byte(i % 8) // control bytes, well below the printable threshold
	}
	path := writeFile(t, dir, "blob", blob, 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.Detect(path)

	require.NoError(t, res.Err)
	assert.False(t, res.Matched)
	assert.Equal(t, "unknown file type", res.Label)
	assert.Equal(t, TierNone, res.Tier)
	assert.Empty(t, res.Tier.Tag())
}

// Classifying the same unmodified file twice yields identical results.
func TestDetectIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", []byte("# Notes\n"), 0o644)

	tester := newTestTester(defaultTestConfig())
	first := tester.Detect(path)
	second := tester.Detect(path)

	assert.Equal(t, first, second)
}

// The magic tier matches a real signature when the filesystem tier has
// nothing to say about the name.
func TestDetectPNGBySignature(t *testing.T) {
	dir := t.TempDir()
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	path := writeFile(t, dir, "image", png, 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.Detect(path)

	require.NoError(t, res.Err)
	assert.Equal(t, "PNG data (image/png)", res.Label)
	assert.Equal(t, "image/png", res.MIMELabel)
	assert.Equal(t, TierMagic, res.Tier)
}

func TestDetectSymlinkModes(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", []byte("hello\n"), 0o644)
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	noDeref := newTestTester(defaultTestConfig())
	res := noDeref.Detect(link)
	require.NoError(t, res.Err)
	assert.Equal(t, "symbolic link", res.Label)
	assert.Equal(t, TierFilesystem, res.Tier)

	derefCfg := defaultTestConfig()
	derefCfg.NoDereference = false
	deref := newTestTester(derefCfg)
	res = deref.Detect(link)
	require.NoError(t, res.Err)
	assert.Equal(t, "text file", res.Label)
}

func TestDetectBrokenSymlinkDereferenced(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

	cfg := defaultTestConfig()
	cfg.NoDereference = false
	tester := newTestTester(cfg)
	res := tester.Detect(link)

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "broken symbolic link")
}
