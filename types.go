package main

// Tier identifies which detection strategy produced a result.
type Tier int

const (
	TierNone Tier = iota
	TierFilesystem
	TierMagic
	TierLanguage
)

// Tag returns the bracketed provenance tag appended in verbose mode.
// TierNone has no tag: no test matched, so there is nothing to credit.
func (t Tier) Tag() string {
	switch t {
	case TierFilesystem:
		return "[Filesystem test]"
	case TierMagic:
		return "[Magic test]"
	case TierLanguage:
		return "[Language test]"
	}
	return ""
}

// Result holds the classification of a single file. It is produced fresh per
// file and never mutated after Detect returns it.
type Result struct {
	Matched     bool
	Label       string
	MIMELabel   string // MIME-flavored label, empty if the tier has none
	Tier        Tier
	Extensions  []string // canonical extensions for --extension mode, may be nil
	Interpreter string   // shebang interpreter path, filesystem tier only
	Err         error    // path error; when set all other fields are zero
}

// Config carries the flag and environment settings for one invocation.
// It is built once in buildConfig and read-only for the lifetime of the run.
type Config struct {
	Verbose       bool
	Brief         bool
	MIMEMode      bool
	ExtensionMode bool
	Separator     string
	NoDereference bool // default true; FTT_DEREFERENCE in the environment flips it
	ExitOnError   bool
	Debug         bool
	Recursive     bool
	ShowHidden    bool
	NoIgnore      bool
	Interactive   bool
	Clipboard     bool
}

// queuedPath is one entry of the input queue. Entries carry the separator in
// effect when they were queued: --files-from expands eagerly, so a later
// --separator only affects files queued after it.
type queuedPath struct {
	path      string
	separator string
}
