package bidfilter

import (
	"regexp"
	"strings"
)

// Label matches a field label case-insensitively. Words may be separated by
// any amount of whitespace (including none) and a last word ending in a word
// character must end at a word boundary, so "Bid No." and "BidNo:" both
// match {"bid", "no"} while "Bidnote" does not.
type Label struct {
	Words []string

	// Plural also accepts a trailing "s" on the last word.
	Plural bool
}

// Pattern returns the regular expression source for the label, without flags.
func (l Label) Pattern() string {
	quoted := make([]string, len(l.Words))
	for i, w := range l.Words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	p := strings.Join(quoted, `\s*`)
	if l.Plural {
		p += "s?"
	}
	if n := len(l.Words); n > 0 && endsInWordChar(l.Words[n-1]) {
		p += `\b`
	}
	return p
}

func endsInWordChar(w string) bool {
	if w == "" {
		return false
	}
	c := w[len(w)-1]
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Regexp compiles the label into a case-insensitive matcher.
func (l Label) Regexp() *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + l.Pattern())
}

// String returns the label words joined by spaces.
func (l Label) String() string {
	return strings.Join(l.Words, " ")
}

// LabelSet is an ordered list of alternative labels for one field.
type LabelSet struct {
	Name   string
	Labels []Label

	// Date marks the field as holding a DD-MM-YYYY value, which enables
	// capturing it straight out of the card's concatenated text.
	Date bool
}

// Regexps compiles every label in order.
func (s LabelSet) Regexps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(s.Labels))
	for i, l := range s.Labels {
		res[i] = l.Regexp()
	}
	return res
}

// Field label sets used by the parser.
var (
	BidNumberLabels = LabelSet{
		Name: "bid_number",
		Labels: []Label{
			{Words: []string{"bid", "no"}},
			{Words: []string{"bid", "number"}},
		},
	}

	ItemsLabels = LabelSet{
		Name: "items",
		Labels: []Label{
			{Words: []string{"item"}, Plural: true},
			{Words: []string{"description"}},
		},
	}

	QuantityLabels = LabelSet{
		Name:   "quantity",
		Labels: []Label{{Words: []string{"quantity"}}},
	}

	DepartmentLabels = LabelSet{
		Name: "department",
		Labels: []Label{
			{Words: []string{"department", "name", "and", "address"}},
			{Words: []string{"department"}},
			{Words: []string{"ministry"}},
		},
	}

	StartDateLabels = LabelSet{
		Name:   "start_date",
		Labels: []Label{{Words: []string{"start", "date"}}},
		Date:   true,
	}

	EndDateLabels = LabelSet{
		Name:   "end_date",
		Labels: []Label{{Words: []string{"end", "date"}}},
		Date:   true,
	}
)
