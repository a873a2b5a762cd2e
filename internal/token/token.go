// Package token turns character identities into the small round tokens drawn
// on each square.
package token

import (
	"strings"
	"unicode"

	"github.com/park285/westeros-chess/internal/identity"
)

// Token is the visual representation of a piece instance.
type Token struct {
	Label      string `json:"label"`
	Background string `json:"background"`
	Tooltip    string `json:"tooltip"`
}

// Render builds the token for an identity. The empty sentinel keeps its
// background color but shows no label and no tooltip.
func Render(id identity.Identity) Token {
	t := Token{Background: id.AccentColor}
	if id.IsEmpty() {
		return t
	}
	name := strings.TrimSpace(id.DisplayName)
	t.Label = Initials(name)
	t.Tooltip = name + " • " + id.RoleLabel
	return t
}

// Initials returns up to two uppercase initials taken from the first two
// whitespace-separated words of name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}
