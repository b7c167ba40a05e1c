package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// QueryPreprocessor turns free-text search and chat input into recipe keywords
type QueryPreprocessor struct {
	logger *zap.Logger
}

// Compiled regex patterns for query preprocessing
var (
	punctuationRegex = regexp.MustCompile(`[^\w\s]`)

	// Matches amounts like "2 cups", "1/2 tsp", "200 g", "1.5 lb"
	amountPattern = regexp.MustCompile(`(?i)\b\d+(?:[./]\d+)?\s*(?:cups?|tbsp|tablespoons?|tsp|teaspoons?|oz|ounces?|lbs?|pounds?|g|grams?|kg|ml|l|liters?|pinch(?:es)?|cloves?|slices?)\b`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// stopWords are English filler and chat phrasing that never identify a recipe
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "with": true,
	"by": true, "from": true, "is": true, "it": true, "as": true, "be": true,
	"are": true, "was": true, "i": true, "me": true, "my": true, "we": true,
	"you": true, "your": true, "some": true, "any": true, "have": true, "has": true,
	"got": true, "what": true, "how": true, "can": true, "could": true, "should": true,
	"would": true, "do": true, "does": true, "make": true, "cook": true, "want": true,
	"like": true, "need": true, "please": true, "something": true, "give": true,
	"show": true, "find": true, "recipe": true, "recipes": true, "dish": true,
	"meal": true, "idea": true, "ideas": true, "using": true, "use": true,
	"today": true, "tonight": true, "good": true, "easy": true, "quick": true,
}

// foodTerms get ranked ahead of other keywords
var foodTerms = map[string]bool{
	"chicken": true, "beef": true, "pork": true, "fish": true, "salmon": true,
	"turkey": true, "lamb": true, "shrimp": true, "tuna": true, "bacon": true,
	"tofu": true, "egg": true, "cheese": true, "milk": true, "butter": true,
	"cream": true, "yogurt": true, "rice": true, "pasta": true, "spaghetti": true,
	"noodle": true, "bread": true, "flour": true, "oat": true, "quinoa": true,
	"tomato": true, "potato": true, "onion": true, "garlic": true, "carrot": true,
	"broccoli": true, "spinach": true, "mushroom": true, "pepper": true, "bean": true,
	"lentil": true, "chickpea": true, "avocado": true, "lemon": true, "apple": true,
	"banana": true, "chocolate": true, "soup": true, "salad": true, "curry": true,
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{logger: logger}
}

// PreprocessQuery lower-cases text and strips amounts, punctuation and extra whitespace
func (p *QueryPreprocessor) PreprocessQuery(text string) string {
	if text == "" {
		return ""
	}

	cleaned := foldDiacritics(strings.ToLower(text))
	cleaned = amountPattern.ReplaceAllString(cleaned, " ")
	cleaned = punctuationRegex.ReplaceAllString(cleaned, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > 200 {
		cleaned = cleaned[:200]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > 100 {
			cleaned = cleaned[:lastSpace]
		}
	}

	p.logger.Debug("query preprocessed", zap.String("input", text), zap.String("output", cleaned))

	return cleaned
}

// Keywords extracts distinct singular keywords from text, food terms first
func (p *QueryPreprocessor) Keywords(text string) []string {
	tokens := tokenize(p.PreprocessQuery(text))

	var food, other []string
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		token = singularize(token)
		if seen[token] {
			continue
		}
		seen[token] = true

		if foodTerms[token] {
			food = append(food, token)
		} else {
			other = append(other, token)
		}
	}

	return append(food, other...)
}

// tokenize splits a string into lowercase tokens.
// Removes punctuation, stop words, single characters, and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 {
			continue
		}
		if stopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
