package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeIngredients trims and lower-cases every entry, dropping blanks.
// Order and duplicates are preserved.
func NormalizeIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		n := strings.ToLower(strings.TrimSpace(s))
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

// IngredientSet is a normalized, de-duplicated set of ingredients that remembers
// first-occurrence order.
type IngredientSet struct {
	items []string
	index map[string]struct{}
}

// NewIngredientSet normalizes raw and collapses duplicates
func NewIngredientSet(raw []string) IngredientSet {
	normalized := NormalizeIngredients(raw)
	set := IngredientSet{
		items: make([]string, 0, len(normalized)),
		index: make(map[string]struct{}, len(normalized)),
	}
	for _, n := range normalized {
		if _, ok := set.index[n]; ok {
			continue
		}
		set.index[n] = struct{}{}
		set.items = append(set.items, n)
	}
	return set
}

// Contains reports whether the normalized ingredient is in the set
func (s IngredientSet) Contains(ingredient string) bool {
	_, ok := s.index[ingredient]
	return ok
}

// Items returns the ingredients in first-occurrence order
func (s IngredientSet) Items() []string {
	return append([]string(nil), s.items...)
}

// Len returns the number of distinct ingredients
func (s IngredientSet) Len() int {
	return len(s.items)
}

var (
	quantityRegex  = regexp.MustCompile(`\d+\s*/\s*\d+|\d+\.\d+|\d+`)
	leadingArticle = regexp.MustCompile(`^(a|an|the)\s+`)
	trailingClause = regexp.MustCompile(`\s+(and|or|with|without)\s+.*$`)
)

// measureWords are quantity, unit and preparation words that do not identify an ingredient
var measureWords = map[string]bool{
	"cup": true, "cups": true, "tablespoon": true, "tablespoons": true, "tbsp": true,
	"tsp": true, "teaspoon": true, "teaspoons": true, "pound": true, "pounds": true,
	"lb": true, "lbs": true, "ounce": true, "ounces": true, "oz": true, "gram": true,
	"grams": true, "g": true, "kg": true, "ml": true, "l": true, "liter": true, "liters": true,
	"pinch": true, "dash": true, "handful": true, "bunch": true, "clove": true, "cloves": true,
	"slice": true, "slices": true, "can": true, "cans": true, "jar": true, "package": true,
	"large": true, "medium": true, "small": true, "extra": true, "fresh": true, "dried": true,
	"frozen": true, "canned": true, "chopped": true, "diced": true, "sliced": true,
	"minced": true, "grated": true, "shredded": true, "crushed": true, "boneless": true,
	"skinless": true, "whole": true, "halved": true, "quartered": true, "cubed": true,
}

// foldDiacritics maps "jalapeño" to "jalapeno"
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// canonicalIngredient reduces an ingredient to a comparable core name.
// Only the extended match uses it; plain matching stays on trim+lower.
func canonicalIngredient(s string) string {
	c := foldDiacritics(strings.ToLower(strings.TrimSpace(s)))
	c = quantityRegex.ReplaceAllString(c, " ")
	c = punctuationRegex.ReplaceAllString(c, " ")

	words := strings.Fields(c)
	kept := words[:0]
	for _, w := range words {
		if !measureWords[w] {
			kept = append(kept, w)
		}
	}
	c = strings.Join(kept, " ")
	c = leadingArticle.ReplaceAllString(c, "")
	c = trailingClause.ReplaceAllString(c, "")

	return singularize(strings.TrimSpace(c))
}

// singularize strips an English plural from the last word
func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 4:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "ches"), strings.HasSuffix(s, "shes"),
		strings.HasSuffix(s, "xes"), strings.HasSuffix(s, "zes"):
		return s
	case strings.HasSuffix(s, "oes"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s") && len(s) > 3:
		return s[:len(s)-1]
	}
	return s
}
