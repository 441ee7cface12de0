// Package skills derives a structured skill list from resolved ENS text
// records. This is best-effort enrichment, not an authoritative classifier:
// the matching deliberately falls back to plain substring containment and
// accepts the false positives that come with it.
package skills

import (
	"strings"

	"github.com/basedlist/directory/internal/models"
)

// Vocabulary is the approved skill list. Only terms from this list ever
// appear in an inferred skill set; matches always surface the vocabulary
// term itself, not the matched substring.
var Vocabulary = []string{
	"Solidity",
	"Rust",
	"Go",
	"Javascript",
	"Typescript",
	"Python",
	"React",
	"Node.js",
	"Security",
	"Smart contracts",
	"DeFi",
	"NFTs",
	"Frontend",
	"Backend",
	"Fullstack",
	"DevOps",
	"Data science",
	"Design",
	"UI/UX",
	"Product management",
	"Strategy",
	"Prototyping",
	"Marketing",
	"Community",
	"Business development",
	"Writing",
	"Research",
}

var vocabularySet = func() map[string]string {
	m := make(map[string]string, len(Vocabulary))
	for _, term := range Vocabulary {
		m[strings.ToLower(term)] = term
	}
	return m
}()

// FromKeywords splits an explicit keywords record into trimmed skill tokens.
// This is the legacy "skills" list surfaced verbatim in lookup responses.
func FromKeywords(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Infer derives the persisted skill list from a record set. Evidence is
// gathered in a fixed order so the output is reproducible: the keywords
// record, any record whose key mentions skills/expertise/technology, a
// vocabulary scan over description and social handles, then the special
// phrase rules. Candidates are filtered down to the approved vocabulary and
// deduplicated preserving first occurrence.
func Infer(recs []models.TextRecord) []string {
	var candidates []string

	for _, r := range recs {
		if r.Key == "keywords" {
			candidates = append(candidates, FromKeywords(r.Value)...)
		}
	}

	for _, r := range recs {
		key := strings.ToLower(r.Key)
		if strings.Contains(key, "skill") || strings.Contains(key, "expertise") || strings.Contains(key, "technology") {
			candidates = append(candidates, FromKeywords(r.Value)...)
		}
	}

	scratch := strings.ToLower(valueOf(recs, "description") + " " + valueOf(recs, "com.github") + " " + valueOf(recs, "com.twitter"))
	for _, term := range Vocabulary {
		if matchesTerm(scratch, strings.ToLower(term)) {
			candidates = append(candidates, term)
		}
	}

	description := strings.ToLower(valueOf(recs, "description"))
	if strings.Contains(description, "idea guy") {
		candidates = append(candidates, "Product management", "Strategy")
	}
	if strings.Contains(description, "makes things") {
		candidates = append(candidates, "Prototyping")
	}

	out := []string{}
	seen := make(map[string]bool)
	for _, c := range candidates {
		canonical, ok := vocabularySet[strings.ToLower(strings.TrimSpace(c))]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

func valueOf(recs []models.TextRecord, key string) string {
	for _, r := range recs {
		if r.Key == key {
			return r.Value
		}
	}
	return ""
}

// matchesTerm looks for the term surrounded by spaces or at the string
// boundaries, falling back to bare substring containment.
func matchesTerm(text, term string) bool {
	if text == "" || term == "" {
		return false
	}
	if strings.Contains(" "+text+" ", " "+term+" ") {
		return true
	}
	return strings.Contains(text, term)
}
