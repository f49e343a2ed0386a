package main

import (
	"io"
	"os"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// languageReadLimit bounds how much content the language tier inspects.
// Markers this tier cares about live at the top of a file.
const languageReadLimit = 1024

// printableThreshold is the printable-rune ratio above which otherwise
// unrecognized content is reported as a generic text file.
const printableThreshold = 0.7

// Pattern pairs one compiled content expression with the labels it produces.
// The pattern list is ordered and the order is the tie-break: the first
// pattern that matches wins, even when later ones would match too.
type Pattern struct {
	re       *regexp.Regexp
	label    string
	mimeType string
}

// newPatternList compiles the language detection patterns. Shebang hints and
// language-specific declaration idioms come before generic markup and data
// notation so that the specific answer wins.
func newPatternList() []Pattern {
	mustPattern := func(expr, label, mimeType string) Pattern {
		return Pattern{re: regexp.MustCompile(`(?mi)` + expr), label: label, mimeType: mimeType}
	}
	return []Pattern{
		mustPattern(`#!/usr/bin/env python|#!/usr/bin/python|^import\s+\w+|^from\s+\w+\s+import`, "Python script", "text/x-python"),
		mustPattern(`#!/bin/bash|#!/bin/sh|^#\s*bash|^#\s*shell`, "shell script", "text/x-shellscript"),
		mustPattern(`^#!/usr/bin/env node|^const\s+\w+|^let\s+\w+|^var\s+\w+`, "JavaScript file", "text/javascript"),
		mustPattern(`^#include\s*<.*>|^#include\s*".*"|int\s+main\s*\(`, "C/C++ source", "text/x-c"),
		mustPattern(`^package\s+\w+|^public\s+class\s+\w+|^import\s+java\.`, "Java source", "text/x-java"),
		mustPattern(`^<\?php|<\?=|\$\w+\s*=`, "PHP script", "text/x-php"),
		mustPattern(`^class\s+\w+|^def\s+\w+|^module\s+\w+`, "Ruby script", "text/x-ruby"),
		mustPattern(`^<!DOCTYPE html|^<html|^<head>|^<body>`, "HTML document", "text/html"),
		mustPattern(`^\s*\{|\s*"[\w-]+"\s*:`, "JSON data", "application/json"),
		mustPattern(`^<\?xml|^<[a-zA-Z][^>]*>`, "XML document", "application/xml"),
		mustPattern(`^\s*[\w-]+\s*:\s*[\w-]+|^\s*\.|^\s*#[a-zA-Z]`, "CSS stylesheet", "text/css"),
		mustPattern(`^#+\s+\w+|^\*\s+\w+|^\d+\.\s+\w+`, "Markdown document", "text/markdown"),
	}
}

// languageTest is the third detection tier: content pattern matching over a
// bounded prefix, then the printable-ratio heuristic. Unreadable content is a
// "no match", never an error; by this point in the chain the fallback result
// absorbs it.
func (t *FileTypeTester) languageTest(path string) *Result {
	content, err := readPrefix(path, languageReadLimit)
	if err != nil {
		t.logger.Debug("language test: content unreadable", "path", path, "err", err)
		return nil
	}

	for _, p := range t.patterns {
		if p.re.Match(content) {
			return &Result{
				Matched:    true,
				Label:      p.label,
				MIMELabel:  p.mimeType,
				Tier:       TierLanguage,
				Extensions: t.extTable.CanonicalForLabel(p.label),
			}
		}
	}

	if isMostlyPrintable(content) {
		return &Result{
			Matched:    true,
			Label:      "text file",
			MIMELabel:  "text/plain",
			Tier:       TierLanguage,
			Extensions: t.extTable.CanonicalForLabel("text file"),
		}
	}

	return nil
}

// readPrefix reads at most limit bytes from the start of a file.
func readPrefix(path string, limit int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// isMostlyPrintable decodes the prefix as UTF-8 and checks whether printable
// and whitespace runes dominate. Invalid bytes are dropped before the ratio
// is taken, so they count in neither direction; control characters decode
// fine and count against it. Empty or entirely undecodable content does not
// qualify.
func isMostlyPrintable(content []byte) bool {
	var total, printable int
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		content = content[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 {
		return false
	}
	return float64(printable)/float64(total) > printableThreshold
}
