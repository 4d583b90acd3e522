package search

import (
	"strings"

	"github.com/jcarcamo/fyyur-project/pkg/sortname"
	"github.com/uptrace/bun"
)

const maxQueryLength = 100

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SanitizeTerm trims the term and caps it at maxQueryLength characters.
func SanitizeTerm(term string) string {
	term = strings.TrimSpace(term)
	if r := []rune(term); len(r) > maxQueryLength {
		term = string(r[:maxQueryLength])
	}
	return term
}

// BuildLikePattern turns a user term into a LIKE pattern matching any value
// that contains it. LIKE wildcards in the term are escaped with a backslash,
// so the pattern must be used with ESCAPE '\'. An empty term matches
// everything.
func BuildLikePattern(term string) string {
	term = SanitizeTerm(term)
	if term == "" {
		return "%"
	}
	return "%" + likeEscaper.Replace(term) + "%"
}

// WhereContains restricts q to rows whose folded column contains term,
// ignoring case. column must hold sortname.Fold of the searched value. An
// empty term leaves q untouched.
func WhereContains(q *bun.SelectQuery, column, term string) *bun.SelectQuery {
	if SanitizeTerm(term) == "" {
		return q
	}
	return q.Where("? LIKE ? ESCAPE '\\'", bun.Ident(column), BuildLikePattern(sortname.Fold(term)))
}
