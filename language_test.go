package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageTestPatterns(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantLabel string
		wantMIME  string
	}{
		{"python_shebang", "#!/usr/bin/env python3\nprint('hi')\n", "Python script", "text/x-python"},
		{"python_import", "import os\nimport sys\n", "Python script", "text/x-python"},
		{"python_from_import", "from collections import deque\n", "Python script", "text/x-python"},
		{"shell_shebang", "#!/bin/bash\nset -e\n", "shell script", "text/x-shellscript"},
		{"javascript_const", "const answer = 42;\n", "JavaScript file", "text/javascript"},
		{"c_include", "#include <stdio.h>\n", "C/C++ source", "text/x-c"},
		{"c_main", "static int x;\nint main(void) { return 0; }\n", "C/C++ source", "text/x-c"},
		{"java_class", "public class Hello {\n}\n", "Java source", "text/x-java"},
		{"php_open_tag", "<?php\necho 'hi';\n", "PHP script", "text/x-php"},
		{"html_doctype", "<!DOCTYPE html>\n<html></html>\n", "HTML document", "text/html"},
		{"json_object", "{\n  \"name\": \"ftt\"\n}\n", "JSON data", "application/json"},
		{"xml_declaration", "<?xml version=\"1.0\"?>\n<root/>\n", "XML document", "application/xml"},
		{"markdown_heading", "# Title\n\nSome prose.\n", "Markdown document", "text/markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "sample", []byte(tt.content), 0o644)

			tester := newTestTester(defaultTestConfig())
			res := tester.languageTest(path)

			require.NotNil(t, res)
			assert.Equal(t, tt.wantLabel, res.Label)
			assert.Equal(t, tt.wantMIME, res.MIMELabel)
			assert.Equal(t, TierLanguage, res.Tier)
		})
	}
}

// When several patterns match the same content, pattern order decides, not the
// position of the markers inside the file.
func TestLanguageTestPatternOrderBreaksTies(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed", []byte("<!DOCTYPE html>\nimport os\n"), 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.languageTest(path)

	require.NotNil(t, res)
	assert.Equal(t, "Python script", res.Label)
}

func TestLanguageTestPrintableFallback(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prose", []byte("hello there, nothing structured about this\n"), 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.languageTest(path)

	require.NotNil(t, res)
	assert.Equal(t, "text file", res.Label)
	assert.Equal(t, "text/plain", res.MIMELabel)
}

func TestLanguageTestDeclinesBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "junk", bytes.Repeat([]byte{0x00, 0x01, 0x02}, 100), 0o644)

	tester := newTestTester(defaultTestConfig())
	assert.Nil(t, tester.languageTest(path))
}

func TestLanguageTestDeclinesEmptyContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "void", nil, 0o644)

	tester := newTestTester(defaultTestConfig())
	assert.Nil(t, tester.languageTest(path))
}

// Only the first kilobyte is consulted; a marker past that boundary is
// invisible to this tier, while printable padding still classifies as text.
func TestLanguageTestReadsBoundedPrefix(t *testing.T) {
	dir := t.TempDir()
	content := append(bytes.Repeat([]byte{'x'}, languageReadLimit), []byte("\n<?php\n")...)
	path := writeFile(t, dir, "late", content, 0o644)

	tester := newTestTester(defaultTestConfig())
	res := tester.languageTest(path)

	require.NotNil(t, res)
	assert.Equal(t, "text file", res.Label)
}

func TestIsMostlyPrintable(t *testing.T) {
	assert.True(t, isMostlyPrintable([]byte("plain old text\n")))
	assert.False(t, isMostlyPrintable(nil))
	assert.False(t, isMostlyPrintable(bytes.Repeat([]byte{0x00}, 64)))

	// 7 printable out of 10 is not strictly above the 0.7 threshold.
	mixed := append([]byte("abcdefg"), 0x00, 0x01, 0x02)
	assert.False(t, isMostlyPrintable(mixed))

	// Invalid UTF-8 bytes are dropped before the ratio is taken; they count
	// in neither direction. 8 printable out of 8 decoded runes passes even
	// though 8 of 12 raw bytes would not.
	invalid := append([]byte("abcdefgh"), 0xFF, 0xFE, 0xFF, 0xFE)
	assert.True(t, isMostlyPrintable(invalid))

	// Entirely undecodable content does not qualify as text.
	assert.False(t, isMostlyPrintable([]byte{0xFF, 0xFE, 0xFF, 0xFE}))
}
