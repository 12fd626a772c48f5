// Package site describes the portfolio's pages and the command palette
// search over them.
package site

import (
	"slices"
	"strings"
	"unicode"

	"starfield/internal/core"
)

// Page is one navigable destination.
type Page struct {
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Scene    string   `json:"scene"`
	Keywords []string `json:"keywords,omitempty"`
}

var pages = []Page{
	{Title: "Home", Path: "/", Scene: core.SceneHome, Keywords: []string{"welcome", "landing", "start"}},
	{Title: "Projects", Path: "/projects", Scene: core.SceneProjects, Keywords: []string{"work", "portfolio", "code"}},
	{Title: "Experience", Path: "/experience", Scene: core.SceneExperience, Keywords: []string{"jobs", "career", "resume"}},
	{Title: "About", Path: "/#about-section", Scene: core.SceneAbout, Keywords: []string{"bio", "skills", "me"}},
	{Title: "Contact", Path: "/contact", Scene: core.SceneContact, Keywords: []string{"email", "message", "hire"}},
}

// Pages returns the site's pages in navigation order.
func Pages() []Page {
	return slices.Clone(pages)
}

// SceneForKey maps the digit keys 1..n to the pages in navigation order.
func SceneForKey(digit int) (string, bool) {
	if digit < 1 || digit > len(pages) {
		return "", false
	}
	return pages[digit-1].Scene, true
}

// Match is a search hit.
type Match struct {
	Page
	Score int `json:"score"`
}

// Match quality tiers. Keyword hits rank below title hits of the same tier.
const (
	scorePrefix     = 400
	scoreWordStart  = 300
	scoreContiguous = 200
	scoreScattered  = 100
	keywordPenalty  = 50
)

// Search ranks pages against query with a case-insensitive subsequence
// match: prefix hits beat word-start hits, which beat contiguous and then
// scattered hits. Ties keep navigation order. An empty query returns every
// page. limit <= 0 means no limit.
func Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Match
	for _, p := range pages {
		best := score(q, p.Title)
		for _, k := range p.Keywords {
			if s := score(q, k) - keywordPenalty; s > best && s > 0 {
				best = s
			}
		}
		if best > 0 {
			out = append(out, Match{Page: p, Score: best})
		}
	}
	slices.SortStableFunc(out, func(a, b Match) int { return b.Score - a.Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func score(q, candidate string) int {
	if q == "" {
		return scorePrefix
	}
	s := strings.ToLower(candidate)
	switch {
	case strings.HasPrefix(s, q):
		return scorePrefix - min(len(s)-len(q), 49)
	case wordStart(s, q):
		return scoreWordStart
	case strings.Contains(s, q):
		return scoreContiguous
	}
	gaps, ok := subsequence(s, q)
	if !ok {
		return 0
	}
	return scoreScattered - min(gaps, 49)
}

func wordStart(s, q string) bool {
	for i := 1; i < len(s); i++ {
		prev := rune(s[i-1])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) && strings.HasPrefix(s[i:], q) {
			return true
		}
	}
	return false
}

// subsequence reports whether q's runes appear in order in s and how many
// runes were skipped between the first and last hit.
func subsequence(s, q string) (int, bool) {
	qr := []rune(q)
	j, first, last := 0, -1, -1
	for i, r := range []rune(s) {
		if j == len(qr) {
			break
		}
		if r == qr[j] {
			if first < 0 {
				first = i
			}
			last = i
			j++
		}
	}
	if j < len(qr) {
		return 0, false
	}
	return last - first + 1 - len(qr), true
}
