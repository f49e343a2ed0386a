package main

import (
	"fmt"
	"strings"
)

// noExtensions is what --extension prints when the matched tier has no
// extension mapping (special files, executables, language labels without a
// table entry).
const noExtensions = "???"

// fallbackMIME is the MIME label for results that carry none, including the
// unknown-file-type fallback.
const fallbackMIME = "application/octet-stream"

// formatLine renders the single output line for one classified file.
//
// Mode precedence on a match: extension mode replaces the label outright and
// beats mime mode when both are set (the more specific request wins); mime
// mode substitutes the MIME-flavored label; verbose appends the tier tag
// unless brief is set; brief drops the filename and separator entirely.
func formatLine(name string, res Result, separator string, cfg Config) string {
	if res.Err != nil {
		msg := "ERROR: " + res.Err.Error()
		if cfg.Brief {
			return msg
		}
		return fmt.Sprintf("%s%s %s", name, separator, msg)
	}

	label := res.Label
	switch {
	case cfg.ExtensionMode:
		if len(res.Extensions) > 0 {
			label = strings.Join(res.Extensions, "/")
		} else {
			label = noExtensions
		}
	case cfg.MIMEMode:
		if res.MIMELabel != "" {
			label = res.MIMELabel
		} else {
			label = fallbackMIME
		}
	}

	if cfg.Verbose && !cfg.Brief {
		if tag := res.Tier.Tag(); tag != "" {
			label += " " + tag
		}
	}

	if cfg.Brief {
		return label
	}
	return fmt.Sprintf("%s%s %s", name, separator, label)
}
