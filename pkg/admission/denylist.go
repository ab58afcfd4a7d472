package admission

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultForbiddenWords is the stock denylist.
var DefaultForbiddenWords = []string{"spam", "viagra", "casino", "bitcoin", "crypto"}

// Denylist rejects messages containing any listed term as a substring.
// Matching is done after NFKC normalisation and Unicode case folding, so
// "BITCOIN", "Bitcoin" and full-width "ｂｉｔｃｏｉｎ" all match "bitcoin".
type Denylist struct {
	terms []string
}

// NewDenylist builds a denylist from terms. Blank terms are ignored.
func NewDenylist(terms ...string) *Denylist {
	d := &Denylist{terms: make([]string, 0, len(terms))}
	for _, t := range terms {
		if t = fold(strings.TrimSpace(t)); t != "" {
			d.terms = append(d.terms, t)
		}
	}
	return d
}

// DefaultDenylist returns a denylist over DefaultForbiddenWords.
func DefaultDenylist() *Denylist {
	return NewDenylist(DefaultForbiddenWords...)
}

// Allow implements ContentPolicy.
func (d *Denylist) Allow(message string) (bool, string) {
	folded := fold(message)
	for _, t := range d.terms {
		if strings.Contains(folded, t) {
			return false, t
		}
	}
	return true, ""
}

// Terms returns the normalised terms.
func (d *Denylist) Terms() []string {
	return append([]string(nil), d.terms...)
}

// cases.Caser keeps state, so a fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}
