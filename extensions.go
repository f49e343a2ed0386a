package main

import "strings"

// ExtensionEntry maps one lowercase dotted extension to a human-readable type
// label. Canonical lists every extension conventionally used for the type, in
// preference order; it is what --extension prints, joined by "/".
type ExtensionEntry struct {
	Extension string
	Label     string
	Canonical []string
}

// extensionEntries is the static table behind the filesystem tier's extension
// lookup. Labels reachable through several extensions (JPEG, HTML, YAML)
// share one canonical list.
var extensionEntries = []ExtensionEntry{
	{".txt", "text file", []string{"txt"}},
	{".py", "Python script", []string{"py"}},
	{".js", "JavaScript file", []string{"js"}},
	{".html", "HTML document", []string{"html", "htm"}},
	{".htm", "HTML document", []string{"html", "htm"}},
	{".css", "CSS stylesheet", []string{"css"}},
	{".json", "JSON data", []string{"json"}},
	{".xml", "XML document", []string{"xml"}},
	{".csv", "CSV data", []string{"csv"}},
	{".md", "Markdown document", []string{"md"}},
	{".yaml", "YAML data", []string{"yaml", "yml"}},
	{".yml", "YAML data", []string{"yaml", "yml"}},
	{".toml", "TOML data", []string{"toml"}},
	{".jpg", "JPEG image", []string{"jpeg", "jpg"}},
	{".jpeg", "JPEG image", []string{"jpeg", "jpg"}},
	{".png", "PNG image", []string{"png"}},
	{".gif", "GIF image", []string{"gif"}},
	{".svg", "SVG image", []string{"svg"}},
	{".webp", "WebP image", []string{"webp"}},
	{".pdf", "PDF document", []string{"pdf"}},
	{".zip", "ZIP archive", []string{"zip"}},
	{".tar", "TAR archive", []string{"tar"}},
	{".gz", "GZIP compressed file", []string{"gz"}},
	{".exe", "Windows executable", []string{"exe"}},
	{".dll", "Windows DLL", []string{"dll"}},
	{".so", "shared library", []string{"so"}},
	{".a", "static library", []string{"a"}},
	{".o", "object file", []string{"o"}},
	{".c", "C source file", []string{"c"}},
	{".cpp", "C++ source file", []string{"cpp"}},
	{".h", "C/C++ header file", []string{"h"}},
	{".go", "Go source file", []string{"go"}},
	{".rs", "Rust source file", []string{"rs"}},
	{".ts", "TypeScript file", []string{"ts"}},
	{".java", "Java source file", []string{"java"}},
	{".class", "Java bytecode", []string{"class"}},
	{".rb", "Ruby script", []string{"rb"}},
	{".php", "PHP script", []string{"php"}},
	{".sh", "shell script", []string{"sh"}},
	{".bat", "batch file", []string{"bat"}},
	{".ps1", "PowerShell script", []string{"ps1"}},
}

// ExtensionTable provides lookups over the static extension entries. Loaded
// once at startup and handed to the tester read-only; classifiers never
// mutate it.
type ExtensionTable struct {
	entries []ExtensionEntry
	byExt   map[string]int
	byLabel map[string][]string
}

func newExtensionTable() *ExtensionTable {
	t := &ExtensionTable{
		entries: extensionEntries,
		byExt:   make(map[string]int, len(extensionEntries)),
		byLabel: make(map[string][]string, len(extensionEntries)),
	}
	for i, e := range t.entries {
		t.byExt[e.Extension] = i
		// First entry for a label wins; duplicates share the same canonical
		// list anyway.
		if _, ok := t.byLabel[e.Label]; !ok {
			t.byLabel[e.Label] = e.Canonical
		}
	}
	return t
}

// Lookup finds the entry for a dotted extension, case-insensitively.
func (t *ExtensionTable) Lookup(ext string) (ExtensionEntry, bool) {
	i, ok := t.byExt[strings.ToLower(ext)]
	if !ok {
		return ExtensionEntry{}, false
	}
	return t.entries[i], true
}

// CanonicalForLabel returns the canonical extension list for a label, or nil.
// The language tier uses this so that e.g. a content-detected "Python script"
// still has extensions under --extension mode.
func (t *ExtensionTable) CanonicalForLabel(label string) []string {
	return t.byLabel[label]
}

// extensionToMIME is the built-in extension→MIME fallback used by the magic
// tier when the signature database has no answer, and by the filesystem tier
// to give extension matches a MIME flavor. It deliberately covers more ground
// than the label table (fonts, audio, video, office formats) so the fallback
// stays reachable for files the label table ignores.
var extensionToMIME = map[string]string{
	".txt":   "text/plain",
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "text/javascript",
	".ts":    "text/typescript",
	".json":  "application/json",
	".xml":   "application/xml",
	".csv":   "text/csv",
	".md":    "text/markdown",
	".yaml":  "application/yaml",
	".yml":   "application/yaml",
	".toml":  "application/toml",
	".py":    "text/x-python",
	".rb":    "text/x-ruby",
	".php":   "text/x-php",
	".sh":    "text/x-shellscript",
	".c":     "text/x-c",
	".cpp":   "text/x-c++",
	".h":     "text/x-c",
	".go":    "text/x-go",
	".rs":    "text/x-rust",
	".java":  "text/x-java",
	".class": "application/x-java-applet",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".png":   "image/png",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".bmp":   "image/bmp",
	".tiff":  "image/tiff",
	".tif":   "image/tiff",
	".mp3":   "audio/mpeg",
	".wav":   "audio/wav",
	".ogg":   "audio/ogg",
	".flac":  "audio/flac",
	".m4a":   "audio/mp4",
	".mp4":   "video/mp4",
	".mpeg":  "video/mpeg",
	".mpg":   "video/mpeg",
	".webm":  "video/webm",
	".mov":   "video/quicktime",
	".avi":   "video/x-msvideo",
	".pdf":   "application/pdf",
	".zip":   "application/zip",
	".tar":   "application/x-tar",
	".gz":    "application/gzip",
	".bz2":   "application/x-bzip2",
	".7z":    "application/x-7z-compressed",
	".rar":   "application/vnd.rar",
	".exe":   "application/vnd.microsoft.portable-executable",
	".dll":   "application/vnd.microsoft.portable-executable",
	".so":    "application/x-sharedlib",
	".a":     "application/x-archive",
	".o":     "application/x-object",
	".doc":   "application/msword",
	".docx":  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":   "application/vnd.ms-excel",
	".xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":   "application/vnd.ms-powerpoint",
	".pptx":  "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".bat":   "text/x-msdos-batch",
	".ps1":   "text/plain",
}

// mimeForExtension returns the MIME type for a dotted extension, or "".
func mimeForExtension(ext string) string {
	return extensionToMIME[strings.ToLower(ext)]
}
