package question

import (
	"strings"

	"github.com/abhisek/prepengine/internal/difficulty"
)

// Section is one of the two scored halves of the exam.
type Section string

const (
	SectionELA  Section = "ela"
	SectionMath Section = "math"
)

// AllSections returns the sections in exam order.
func AllSections() []Section {
	return []Section{SectionELA, SectionMath}
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return s == SectionELA || s == SectionMath
}

// DisplayName returns a human-readable section name.
func (s Section) DisplayName() string {
	switch s {
	case SectionELA:
		return "Reading & Writing"
	case SectionMath:
		return "Math"
	default:
		return string(s)
	}
}

// Type is the answer format of a question.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeGridIn         Type = "grid_in"
)

// OptionKind tags the variant held by an Option.
type OptionKind string

const (
	// OptionChoice is a lettered answer choice.
	OptionChoice OptionKind = "choice"
	// OptionFreeform is unstructured text, e.g. a grid-in format note.
	OptionFreeform OptionKind = "freeform"
)

// Option is a presentation-only answer option. Label is set only for
// choices.
type Option struct {
	Kind  OptionKind `json:"kind"`
	Label string     `json:"label,omitempty"`
	Text  string     `json:"text"`
}

// Question is a single item in the bank. The engine reads Section,
// Category, Difficulty and Type; the rest is presentation.
type Question struct {
	ID         string          `json:"id"`
	Section    Section         `json:"section"`
	Category   string          `json:"category"`
	Difficulty difficulty.Tier `json:"difficulty"`
	Type       Type            `json:"type"`
	Stem       string          `json:"stem"`
	Options    []Option        `json:"options,omitempty"`
	PassageID  string          `json:"passage_id,omitempty"`
}

// IsGridIn reports whether the question is answered by entering a value.
func (q Question) IsGridIn() bool {
	return q.Type == TypeGridIn
}

// Filter narrows a pool. Zero-valued fields do not filter.
type Filter struct {
	Section        Section
	CategoryPrefix string
	Difficulty     difficulty.Tier
}

// Match reports whether q passes every set field of f.
func (f Filter) Match(q Question) bool {
	if f.Section != "" && q.Section != f.Section {
		return false
	}
	if f.CategoryPrefix != "" && !strings.HasPrefix(q.Category, f.CategoryPrefix) {
		return false
	}
	if f.Difficulty != 0 && q.Difficulty != f.Difficulty {
		return false
	}
	return true
}

// IDs returns the ids of qs in order.
func IDs(qs []Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
