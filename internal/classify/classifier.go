package classify

import (
	"strings"

	"golang.org/x/text/cases"
)

// GameType is the declared storefront type that marks a game.
const GameType = "game"

// ByType reports whether the declared type marks a game. The comparison is
// exact: "Game", "dlc" and "" are all non-games.
func ByType(declaredType string) bool {
	return declaredType == GameType
}

// ByKeyword reports whether name contains none of the keywords.
func ByKeyword(name string, keywords Keywords) bool {
	_, matched := keywords.Match(name)
	return !matched
}

// Keywords is an immutable set of non-game name markers matched
// case-insensitively. The zero value matches nothing.
type Keywords struct {
	original []string
	folded   []string
}

var defaultKeywords = []string{
	"DLC",
	"Soundtrack",
	"OST",
	"Demo",
	"Tool",
	"Server",
	"SDK",
	"Trailer",
	"Season Pass",
	"Artbook",
	"Wallpaper",
	"Benchmark",
	"Editor",
}

// DefaultKeywords returns the built-in keyword set.
func DefaultKeywords() Keywords {
	return NewKeywords(defaultKeywords...)
}

// DefaultKeywordList returns a copy of the built-in keyword list.
func DefaultKeywordList() []string {
	return append([]string(nil), defaultKeywords...)
}

// NewKeywords builds a keyword set. Blank values are dropped and duplicates are
// collapsed under case folding, keeping the first spelling.
func NewKeywords(values ...string) Keywords {
	var kw Keywords
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := fold(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kw.original = append(kw.original, trimmed)
		kw.folded = append(kw.folded, key)
	}
	return kw
}

// Len returns the number of distinct keywords.
func (k Keywords) Len() int {
	return len(k.original)
}

// List returns the keywords in insertion order.
func (k Keywords) List() []string {
	return append([]string(nil), k.original...)
}

// Match returns the first keyword contained in name.
func (k Keywords) Match(name string) (string, bool) {
	if name == "" || len(k.folded) == 0 {
		return "", false
	}
	folded := fold(name)
	for i, keyword := range k.folded {
		if strings.Contains(folded, keyword) {
			return k.original[i], true
		}
	}
	return "", false
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}
