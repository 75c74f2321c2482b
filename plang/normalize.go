package plang

import "strings"

// aliasMap maps raw language identifiers seen in the wild (editor mode
// names, API codes, selector labels) to canonical identifiers. Keys are
// lower-cased and trimmed before lookup.
var aliasMap = map[string]string{
	"py":         "python3",
	"python":     "python3",
	"python 3":   "python3",
	"python2":    "python3",
	"python 2":   "python3",
	"pypy":       "python3",
	"pypy3":      "python3",
	"java7":      "java",
	"java8":      "java",
	"java 8":     "java",
	"java15":     "java",
	"c++":        "cpp",
	"cpp14":      "cpp",
	"cpp17":      "cpp",
	"cpp20":      "cpp",
	"c++14":      "cpp",
	"c++17":      "cpp",
	"js":         "javascript",
	"node":       "javascript",
	"nodejs":     "javascript",
	"node.js":    "javascript",
	"ts":         "typescript",
	"golang":     "go",
	"rb":         "ruby",
	"kt":         "kotlin",
	"c#":         "csharp",
	"cs":         "csharp",
	"rs":         "rust",
	"hs":         "haskell",
	"mysql":      "sql",
	"oracle":     "sql",
	"tsql":       "sql",
	"db2":        "sql",
	"sh":         "bash",
	"shell":      "bash",
	"text":       "txt",
	"plaintext":  "txt",
	"plain text": "txt",
}

// Normalize maps a raw language identifier to its canonical form.
// Unrecognized input is passed through unchanged (lower-cased, trimmed)
// so callers can decide whether to accept it.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := aliasMap[s]; ok {
		return canonical
	}
	return s
}

// IsKnown reports whether id is a canonical language identifier.
func IsKnown(id string) bool {
	_, err := GetLanguageByID(id)
	return err == nil
}
