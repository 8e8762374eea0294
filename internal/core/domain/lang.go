package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

const (
	// LangC selects C sources.
	LangC = "c"
	// LangCPP selects C++ sources.
	LangCPP = "cpp"
)

var sourceExtensions = map[string][]string{
	LangC:   {".c"},
	LangCPP: {".cpp", ".cc", ".cxx", ".c++"},
}

// NormalizeLang maps accepted spellings of a language to its canonical name.
// Empty selects C.
func NormalizeLang(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "c":
		return LangC
	case "cpp", "c++", "cxx":
		return LangCPP
	default:
		return lang
	}
}

// SourceExtensions returns the file extensions compiled for lang.
// It reports false for an unsupported language.
func SourceExtensions(lang string) ([]string, bool) {
	exts, ok := sourceExtensions[NormalizeLang(lang)]
	return exts, ok
}

// IsSource reports whether path has one of the source extensions of lang.
func IsSource(path, lang string) bool {
	exts, ok := SourceExtensions(lang)
	return ok && slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}
