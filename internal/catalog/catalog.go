// Package catalog defines the static registry of document types, their
// question flows, and the alias table used to resolve free-text type mentions.
//
// Catalog values are immutable after construction and are injected into the
// flow engine rather than read from package-level state.
package catalog

import (
	"fmt"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// Option is one selectable answer for a question.
type Option struct {
	Label       string `json:"label"`                 // human-readable label shown to the user
	Value       string `json:"value"`                 // canonical token stored as the answer
	Description string `json:"description,omitempty"` // optional elaboration
}

// SkipFunc decides whether a question should be bypassed given the answers
// accumulated so far.
type SkipFunc func(answers map[string]models.Answer) bool

// Question is one step of a document type's flow.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Help        string   `json:"help,omitempty"`
	Options     []Option `json:"options,omitempty"`
	AllowCustom bool     `json:"allow_custom,omitempty"`
	Skip        SkipFunc `json:"-"`
}

// DocumentType is one catalog entry: a canonical name, its presentation, and
// the ordered question flow with required-field markers.
type DocumentType struct {
	Name        string     `json:"name"`         // canonical, unique key
	DisplayName string     `json:"display_name"` // shown to users, may embed an acronym
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	Required    []string   `json:"required"` // question ids that must be answered
}

// QuestionByID returns the question with the given id, or nil.
func (d *DocumentType) QuestionByID(id string) *Question {
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return &d.Questions[i]
		}
	}
	return nil
}

// OptionByValue returns the option of q whose value matches, or nil. A nil
// result for a stored answer signals a custom answer.
func OptionByValue(q *Question, value string) *Option {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i]
		}
	}
	return nil
}

// Alias maps a normalized free-text synonym to a canonical type name. Aliases
// are kept in a slice so containment scans have a deterministic, curated order.
type Alias struct {
	Text string // normalized by New (lowercase, [a-z0-9 ])
	Name string // canonical DocumentType.Name
}

// Catalog is the immutable set of document types plus the alias table.
type Catalog struct {
	types   []DocumentType
	byName  map[string]*DocumentType
	aliases []Alias
}

// New builds a catalog from entries and aliases, validating integrity:
// unique type names, unique question ids per flow, required ids referencing
// real questions, and aliases referencing real types.
func New(types []DocumentType, aliases []Alias) (*Catalog, error) {
	c := &Catalog{
		types:   types,
		byName:  make(map[string]*DocumentType, len(types)),
		aliases: aliases,
	}
	for i := range c.types {
		t := &c.types[i]
		if t.Name == "" {
			return nil, fmt.Errorf("document type %d has empty name", i)
		}
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate document type name %q", t.Name)
		}
		seen := make(map[string]bool, len(t.Questions))
		for _, q := range t.Questions {
			if q.ID == "" {
				return nil, fmt.Errorf("document type %q has a question with empty id", t.Name)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("document type %q has duplicate question id %q", t.Name, q.ID)
			}
			seen[q.ID] = true
			if len(q.Options) == 0 && !q.AllowCustom {
				return nil, fmt.Errorf("question %q of %q has no options and no custom answers", q.ID, t.Name)
			}
		}
		for _, id := range t.Required {
			if !seen[id] {
				return nil, fmt.Errorf("document type %q requires unknown question id %q", t.Name, id)
			}
		}
		c.byName[t.Name] = t
	}
	for i := range c.aliases {
		a := &c.aliases[i]
		a.Text = Normalize(a.Text)
		if a.Text == "" {
			return nil, fmt.Errorf("alias %d for %q normalizes to empty", i, a.Name)
		}
		if _, ok := c.byName[a.Name]; !ok {
			return nil, fmt.Errorf("alias %q references unknown document type %q", a.Text, a.Name)
		}
	}
	return c, nil
}

// Types returns the catalog entries in their curated order.
func (c *Catalog) Types() []DocumentType {
	return c.types
}

// Get returns the entry with the given canonical name, or nil.
func (c *Catalog) Get(name string) *DocumentType {
	return c.byName[name]
}

// IsRequired reports whether a question id is marked required for the type.
func (d *DocumentType) IsRequired(id string) bool {
	for _, r := range d.Required {
		if r == id {
			return true
		}
	}
	return false
}
