// Package langdetect guesses the language of a code snippet so that bare
// code fences can be given an info string.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// SampleLines is the number of code lines inspected after a fence opener.
const SampleLines = 4

const (
	langPython     = "python"
	langJavaScript = "javascript"
	langBash       = "bash"
	langSQL        = "sql"
	langJSON       = "json"
)

// keywordRule maps a set of lowercase substrings to a language.
type keywordRule struct {
	lang     string
	keywords []string
}

// Checked in order; the first hit wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywordRules = []keywordRule{
	{lang: langPython, keywords: []string{"def ", "import ", "class ", "print("}},
	{lang: langJavaScript, keywords: []string{"function ", "const ", "let ", "console.log"}},
	{lang: langBash, keywords: []string{"#!/bin/", "apt-get", "pip install", "npm "}},
	{lang: langSQL, keywords: []string{"select ", "from ", "where ", "insert ", "update "}},
}

// Detect returns the fence tag for content, or "" when the language cannot
// be determined.
func Detect(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(content)); safe && lang != "" {
		return normalize(lang)
	}

	lower := strings.ToLower(content)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.lang
			}
		}
	}

	trimmed := strings.TrimSpace(lower)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return langJSON
	}

	return ""
}

// DetectLines runs Detect over the first SampleLines lines.
func DetectLines(lines []string) string {
	if len(lines) > SampleLines {
		lines = lines[:SampleLines]
	}
	return Detect(strings.Join(lines, "\n"))
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
