package catalog

import (
	"strings"
	"unicode"
)

// Normalize lowercases the input, replaces "&" with "and", strips everything
// outside [a-z0-9 ], and collapses whitespace so that user phrasing variants
// compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Resolve maps a free-text user message to a document type in the catalog.
// Matching is attempted in order of precision: exact alias match, alias
// containment either way, display or bare name containment, and finally the
// acronym in a display name's parenthetical. It returns nil when nothing
// matches; the caller decides how to re-prompt.
func (c *Catalog) Resolve(input string) *DocumentType {
	norm := Normalize(input)
	if norm == "" {
		return nil
	}

	for _, a := range c.aliases {
		if norm == a.Text {
			return c.byName[a.Name]
		}
	}

	for _, a := range c.aliases {
		if containsWord(norm, a.Text) || strings.Contains(a.Text, norm) {
			return c.byName[a.Name]
		}
	}

	for i := range c.types {
		dt := &c.types[i]
		display := Normalize(dt.DisplayName)
		bare := Normalize(dt.Name)
		if strings.Contains(norm, bare) || strings.Contains(bare, norm) {
			return dt
		}
		if strings.Contains(norm, display) || strings.Contains(display, norm) {
			return dt
		}
	}

	for i := range c.types {
		dt := &c.types[i]
		if acr := parentheticalAcronym(dt.DisplayName); acr != "" && containsWord(norm, acr) {
			return dt
		}
	}

	return nil
}

// containsWord reports whether sub appears in s on word boundaries. Plain
// substring checks would let "nda" match inside "standard".
func containsWord(s, sub string) bool {
	if sub == "" {
		return false
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(sub)
		beforeOK := start == 0 || s[start-1] == ' '
		afterOK := end == len(s) || s[end] == ' '
		if beforeOK && afterOK {
			return true
		}
		i = start
	}
	return false
}

// parentheticalAcronym extracts a short acronym like "nda" from a display
// name such as "Non-Disclosure Agreement (NDA)".
func parentheticalAcronym(display string) string {
	open := strings.LastIndex(display, "(")
	end := strings.LastIndex(display, ")")
	if open < 0 || end < open {
		return ""
	}
	acr := Normalize(display[open+1 : end])
	if acr == "" || strings.Contains(acr, " ") {
		return ""
	}
	return acr
}
