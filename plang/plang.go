package plang

import "fmt"

type CommentStyle int

const (
	CommentLine CommentStyle = iota
	CommentBlock
	CommentDocstring
)

// ProgrammingLang represents the structure of a programming language.
type ProgrammingLang struct {
	ID           string // canonical identifier
	FullName     string
	FileExt      string // without the leading dot
	MonacoID     string
	CommentStyle CommentStyle
	LinePrefix   string // used when CommentStyle is CommentLine
}

// DefaultLangID is the canonical identifier used when no extraction
// strategy yields a recognizable language.
const DefaultLangID = "txt"

// getHardcodedLanguageList returns a list of hardcoded programming languages.
func getHardcodedLanguageList() []ProgrammingLang {
	languages := []ProgrammingLang{
		{
			ID:           "python3",
			FullName:     "Python 3",
			FileExt:      "py",
			MonacoID:     "python",
			CommentStyle: CommentDocstring,
		},
		{
			ID:           "java",
			FullName:     "Java",
			FileExt:      "java",
			MonacoID:     "java",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "cpp",
			FullName:     "C++",
			FileExt:      "cpp",
			MonacoID:     "cpp",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "c",
			FullName:     "C",
			FileExt:      "c",
			MonacoID:     "c",
			CommentStyle: CommentBlock,
		},
		{
			ID:           "javascript",
			FullName:     "JavaScript",
			FileExt:      "js",
			MonacoID:     "javascript",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "typescript",
			FullName:     "TypeScript",
			FileExt:      "ts",
			MonacoID:     "typescript",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "go",
			FullName:     "Go",
			FileExt:      "go",
			MonacoID:     "go",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "ruby",
			FullName:     "Ruby",
			FileExt:      "rb",
			MonacoID:     "ruby",
			CommentStyle: CommentLine,
			LinePrefix:   "#",
		},
		{
			ID:           "kotlin",
			FullName:     "Kotlin",
			FileExt:      "kt",
			MonacoID:     "kotlin",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "swift",
			FullName:     "Swift",
			FileExt:      "swift",
			MonacoID:     "swift",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "csharp",
			FullName:     "C#",
			FileExt:      "cs",
			MonacoID:     "csharp",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "rust",
			FullName:     "Rust",
			FileExt:      "rs",
			MonacoID:     "rust",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "scala",
			FullName:     "Scala",
			FileExt:      "scala",
			MonacoID:     "scala",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "php",
			FullName:     "PHP",
			FileExt:      "php",
			MonacoID:     "php",
			CommentStyle: CommentLine,
			LinePrefix:   "//",
		},
		{
			ID:           "haskell",
			FullName:     "Haskell",
			FileExt:      "hs",
			MonacoID:     "haskell",
			CommentStyle: CommentLine,
			LinePrefix:   "--",
		},
		{
			ID:           "sql",
			FullName:     "SQL",
			FileExt:      "sql",
			MonacoID:     "sql",
			CommentStyle: CommentLine,
			LinePrefix:   "--",
		},
		{
			ID:           "lua",
			FullName:     "Lua",
			FileExt:      "lua",
			MonacoID:     "lua",
			CommentStyle: CommentLine,
			LinePrefix:   "--",
		},
		{
			ID:           "bash",
			FullName:     "Bash",
			FileExt:      "sh",
			MonacoID:     "shell",
			CommentStyle: CommentLine,
			LinePrefix:   "#",
		},
		{
			ID:           "perl",
			FullName:     "Perl",
			FileExt:      "pl",
			MonacoID:     "perl",
			CommentStyle: CommentLine,
			LinePrefix:   "#",
		},
		{
			ID:           "r",
			FullName:     "R",
			FileExt:      "r",
			MonacoID:     "r",
			CommentStyle: CommentLine,
			LinePrefix:   "#",
		},
		{
			ID:           "txt",
			FullName:     "Plain Text",
			FileExt:      "txt",
			MonacoID:     "plaintext",
			CommentStyle: CommentLine,
			LinePrefix:   "#",
		},
	}
	return languages
}

// ListLanguages returns every language known to the service.
func ListLanguages() []ProgrammingLang {
	return getHardcodedLanguageList()
}

// GetLanguageByID returns the language with the given canonical identifier.
func GetLanguageByID(id string) (*ProgrammingLang, error) {
	for _, lang := range getHardcodedLanguageList() {
		if lang.ID == id {
			return &lang, nil
		}
	}
	return nil, fmt.Errorf("programming language %q not found", id)
}

// GetLanguageByIDOrDefault resolves id, falling back to the default
// language when id is unknown.
func GetLanguageByIDOrDefault(id string) ProgrammingLang {
	lang, err := GetLanguageByID(id)
	if err != nil {
		fallback, _ := GetLanguageByID(DefaultLangID)
		return *fallback
	}
	return *lang
}
