// ABOUTME: Core types for backend-managed records and their descriptors
// ABOUTME: One generic descriptor drives the list, form, and delete flows

package entity

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Record is one backend-managed entity as an opaque field map.
// Identifiers are assigned by the backend; the client never invents one.
type Record map[string]any

// ID returns the backend identifier, or "" for an unsaved record
func (r Record) ID() string {
	if id := r.String("_id"); id != "" {
		return id
	}
	return r.String("id")
}

// String returns the string form of a field; absent fields read as ""
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers decode as float64
		if val == math.Trunc(val) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

// Rule is one field's validation constraints
type Rule struct {
	Required bool
	Min      int
	Type     string // "", "date", "file", "array", "password"
}

// RuleSet maps field name to constraints. Static per entity type.
type RuleSet map[string]Rule

// Column projects one record field into a list table cell
type Column struct {
	Title  string
	Key    string
	Width  int
	Format func(Record) string // overrides the plain field value when set
}

// Cell renders the column value for a record
func (c Column) Cell(r Record) string {
	if c.Format != nil {
		return c.Format(r)
	}
	return r.String(c.Key)
}

// FieldKind selects the form control for a field
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldMultiline
	FieldSelect
	FieldBool
	FieldFile
	FieldPassword
)

// Field is one form input derived from a descriptor
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        FieldKind
	Options     []string // for FieldSelect
	Lines       bool     // multiline value is one item per line
}

// DeleteMode distinguishes bulk soft delete from permanent hard delete
type DeleteMode int

const (
	// DeleteSoft posts {ids: [...]} to /<entity>/delete
	DeleteSoft DeleteMode = iota
	// DeleteHard issues DELETE /<entity>/<id>
	DeleteHard
)

// Filter is an optional query-string filter for list fetches
type Filter struct {
	Param  string
	Values []string
}

// Descriptor describes one entity type: endpoint paths, validation
// rules, list columns, and form fields. The generic list and form
// components consume descriptors instead of per-entity pages.
type Descriptor struct {
	Name       string // route segment, e.g. "project"
	Title      string // singular display name
	Plural     string // menu label
	CreatePath string // POST target for new records
	DeleteMode DeleteMode
	DeletePath string // hard-delete prefix override, defaults to BasePath
	PageSize   int

	Rules        RuleSet
	EditRules    RuleSet            // nil means same as Rules
	RuleVariants map[string]RuleSet // keyed by the variant field value

	Columns []Column
	Fields  []Field
	// FieldVariants replaces Fields per variant value when set
	FieldVariants map[string][]Field
	VariantField  string // record field selecting the variant, e.g. "type"

	Filter    *Filter
	Singleton bool // one document, no pagination (settings)
	Multipart bool // submit as multipart form (file-bearing)
	ReadOnly  bool // list and delete only, no create/edit form
}

// BasePath returns the entity's REST path segment
func (d Descriptor) BasePath() string {
	return "/" + d.Name
}

// RulesFor returns the rule set for the given mode and variant
func (d Descriptor) RulesFor(editing bool, variant string) RuleSet {
	if d.RuleVariants != nil && variant != "" {
		if rs, ok := d.RuleVariants[variant]; ok {
			return rs
		}
	}
	if editing && d.EditRules != nil {
		return d.EditRules
	}
	return d.Rules
}

// FieldsFor returns the form fields for the given variant
func (d Descriptor) FieldsFor(variant string) []Field {
	if d.FieldVariants != nil && variant != "" {
		if fs, ok := d.FieldVariants[variant]; ok {
			return fs
		}
	}
	return d.Fields
}

// Page is the page-window triple for one paginated fetch
type Page struct {
	Number int // 1-based
	Size   int
	Total  int
}

// TotalPages computes ceil(total/size); zero rows still mean one page
func TotalPages(total, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// TotalPages returns the page count for this window
func (p Page) TotalPages() int {
	return TotalPages(p.Total, p.Size)
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages()
}

// Label renders the pagination footer text
func (p Page) Label() string {
	return fmt.Sprintf("Page %d of %d · %d records", p.Number, p.TotalPages(), p.Total)
}

// ParseTagLines splits multiline tag input into clean tag names:
// one per line, trimmed, blank lines dropped, order preserved.
func ParseTagLines(input string) []string {
	var tags []string
	for _, line := range strings.Split(input, "\n") {
		tag := strings.TrimSpace(line)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FormatDate renders a backend timestamp as "2 January 2006".
// Unparseable values pass through unchanged.
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2 January 2006")
		}
	}
	return value
}
