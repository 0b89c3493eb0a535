package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	descriptorPattern    = regexp.MustCompile(`\b(?:` + strings.Join([]string{
		"fresh", "dried", "ground", "chopped", "minced", "diced", "sliced",
		"large", "medium", "small", "whole", "crushed", "grated", "shredded",
		"melted", "softened", "room temperature", "cold", "warm", "hot",
		"organic", "all-purpose", "all purpose", "unsalted", "salted",
	}, "|") + `)\b`)
)

// Plural spellings that should group with their singular form
var nameAliases = map[string]string{
	"eggs": "egg",
}

// NormalizeIngredientName produces the grouping key for an ingredient name:
// case folded, without parenthesised notes, trailing comma clauses or
// preparation descriptors, and with whitespace collapsed.
func NormalizeIngredientName(name string) string {
	folded := cases.Fold().String(name)

	if i := strings.Index(folded, ","); i >= 0 {
		folded = folded[:i]
	}
	folded = parentheticalPattern.ReplaceAllString(folded, " ")

	stripped := collapseSpace(descriptorPattern.ReplaceAllString(folded, " "))
	if stripped == "" {
		// Name was nothing but descriptors ("fresh"); keep it rather than
		// grouping it with every other empty name.
		stripped = collapseSpace(folded)
	}

	if alias, ok := nameAliases[stripped]; ok {
		return alias
	}
	return stripped
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
