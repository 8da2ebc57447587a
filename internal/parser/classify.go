package parser

import (
	"regexp"

	"github.com/njorogek/pesaflow/internal/model"
)

// handlerFunc fills the category-specific fields of a record from
// normalized text. Common fields are already populated by buildRecord.
type handlerFunc func(text string, tx *model.Transaction)

// matcher pairs a category predicate with its extraction handler.
type matcher struct {
	predicate *regexp.Regexp
	handler   handlerFunc
	category  model.Category
}

// matchers is evaluated in order; the first matching predicate wins and
// exactly one category is assigned. The savings predicate runs before the
// generic sent/paid predicate because "transferred to M-SHWARI" satisfies
// both and must reach the savings handler.
var matchers = []matcher{
	{
		category:  model.CategoryReceived,
		predicate: regexp.MustCompile(`(?i)you have received`),
		handler:   handleReceived,
	},
	{
		category:  model.CategorySavings,
		predicate: regexp.MustCompile(`(?i)M-?Shwari.*\btransferred\b|\btransferred\b.*M-?Shwari`),
		handler:   handleSavings,
	},
	{
		category:  model.CategorySent,
		predicate: regexp.MustCompile(`(?i)sent to|paid to|transferred to`),
		handler:   handleSent,
	},
	{
		category:  model.CategoryInternal,
		predicate: regexp.MustCompile(`(?i)has been moved`),
		handler:   handleInternal,
	},
}

// classify returns the matcher table entry for normalized text, or nil when
// no template applies (the caller falls back to CategoryOther).
func classify(text string) *matcher {
	for i := range matchers {
		if matchers[i].predicate.MatchString(text) {
			return &matchers[i]
		}
	}
	return nil
}
