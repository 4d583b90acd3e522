// Package sortname derives the keys venue, artist and genre names are
// ordered and searched by.
package sortname

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Articles are moved from the start of a name to its end
// ("The Musical Hop" sorts as "Musical Hop, The").
var Articles = []string{
	"The",
	"A",
	"An",
}

// ForName returns the sort key of a venue or artist name. Leading articles
// are moved to the end, keeping their original case, and inner whitespace
// is collapsed. A name that is only an article is returned as is.
func ForName(name string) string {
	fields := strings.FieldsFunc(name, unicode.IsSpace)
	if len(fields) == 0 {
		return ""
	}
	if len(fields) > 1 && isArticle(fields[0]) {
		return strings.Join(fields[1:], " ") + ", " + fields[0]
	}
	return strings.Join(fields, " ")
}

func isArticle(word string) bool {
	for _, a := range Articles {
		if strings.EqualFold(word, a) {
			return true
		}
	}
	return false
}

// Fold returns the case-folded form of name that searches match against.
// Folding covers every Unicode letter, not only ASCII.
func Fold(name string) string {
	return cases.Fold().String(name)
}
