// Package citation extracts cited source document names from a completed
// answer.
package citation

import (
	"regexp"
	"strings"
)

// The assistant is instructed to close grounded answers with a source line:
// "Avots: Nolikums" or "Avoti: Nolikums; Tehniskā specifikācija".
var sourceLine = regexp.MustCompile(`(?i)Avot[si]?:\s*([^\n]+)`)

// rule maps a free-text keyword to a canonical document name.
// Evaluated in order, first match wins.
type rule struct {
	keyword   string
	canonical string
}

var normalizationRules = []rule{
	{"nolikum", "Nolikums"},
	{"tehnisk", "Tehniskā specifikācija"},
	{"līgum", "Līguma projekts"},
	{"finanšu", "Finanšu piedāvājumu apkopojums"},
	{"esošā", "Esošās situācijas procesu apraksts"},
	{"noslēgum", "Noslēguma ziņojums"},
}

// ParseCitedSources returns the canonical names of the documents the answer
// claims as sources, deduplicated and in citation order. An answer without a
// source line yields an empty list; that signals "no grounding claimed".
//
// Semicolons separate citation entries. Within an entry the document name is
// the text before the first comma; comma tails are usually section details
// ("Nolikums, 3. nodaļa") and are kept only when they normalize to a known
// document name, so comma-separated document lists still parse.
func ParseCitedSources(content string) []string {
	match := sourceLine.FindStringSubmatch(content)
	if match == nil {
		return nil
	}

	seen := make(map[string]bool)
	var sources []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		sources = append(sources, name)
	}

	for _, entry := range strings.Split(match[1], ";") {
		fragments := strings.Split(entry, ",")
		head := strings.TrimSpace(fragments[0])
		if head != "" {
			if canonical := normalize(head); canonical != "" {
				add(canonical)
			} else {
				add(head)
			}
		}
		for _, tail := range fragments[1:] {
			if canonical := normalize(strings.TrimSpace(tail)); canonical != "" {
				add(canonical)
			}
		}
	}
	return sources
}

// normalize returns the canonical name for a fragment, or "" if no rule matches.
func normalize(fragment string) string {
	lower := strings.ToLower(fragment)
	for _, r := range normalizationRules {
		if strings.Contains(lower, r.keyword) {
			return r.canonical
		}
	}
	return ""
}
