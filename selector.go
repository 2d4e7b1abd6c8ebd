package linkedin

import "slices"

// Locator describes one way of finding a field value in a snapshot.
// Exactly one of CSS or JSON must be set.
type Locator struct {
	// CSS selects candidate elements. The value is the collapsed text of the
	// first candidate unless Attr or Label say otherwise.
	CSS string `yaml:"css,omitempty" json:"css,omitempty"`

	// Attr reads an attribute of the candidate instead of its text.
	Attr string `yaml:"attr,omitempty" json:"attr,omitempty"`

	// Label picks the candidate whose text equals Label (case-insensitive)
	// and returns the text of its next sibling element, as in <dt>/<dd> pairs.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// Contains skips candidates whose text does not contain this substring
	// (case-insensitive).
	Contains string `yaml:"contains,omitempty" json:"contains,omitempty"`

	// JSON is a dotted path into the entity embedded as JSON in the page's
	// <code> blocks, e.g. "headquarter.address.city". Numeric segments index
	// arrays.
	JSON string `yaml:"json,omitempty" json:"json,omitempty"`
}

// FieldRule lists the locators for one field, tried in order.
type FieldRule struct {
	Field    string    `yaml:"field" json:"field"`
	Locators []Locator `yaml:"locators" json:"locators"`
}

// SectionRule describes a repeating section such as experience entries.
// Blocks are CSS selectors tried in order; the first one matching at least
// one element defines the blocks. Fields are located inside each block.
type SectionRule struct {
	Section string      `yaml:"section" json:"section"`
	Blocks  []string    `yaml:"blocks" json:"blocks"`
	Fields  []FieldRule `yaml:"fields" json:"fields"`
}

// SelectorTable is the data-driven description of how to extract one
// entity kind. Markup drift is fixed here rather than in code.
type SelectorTable struct {
	Kind     Kind          `yaml:"kind" json:"kind"`
	Fields   []FieldRule   `yaml:"fields" json:"fields"`
	Sections []SectionRule `yaml:"sections" json:"sections"`

	// Multiple turns every embedded entity resolving at least MinValues
	// fields through JSON locators into a record of its own, as on search
	// result pages. Pages with fewer than two such entities give a single
	// record as usual.
	Multiple  bool `yaml:"multiple,omitempty" json:"multiple,omitempty"`
	MinValues int  `yaml:"minValues,omitempty" json:"minValues,omitempty"`
}

// Validate returns an error if the table contains invalid rules.
func (t *SelectorTable) Validate() error {
	if t.Kind != KindCompany && t.Kind != KindPerson {
		return Errorf(EINVALID, "selector table kind must be %q or %q", KindCompany, KindPerson)
	}
	if t.MinValues < 0 {
		return Errorf(EINVALID, "selector table minValues must not be negative")
	}
	for _, rule := range t.Fields {
		if err := rule.validate(true); err != nil {
			return err
		}
	}
	for _, section := range t.Sections {
		if section.Section == "" {
			return Errorf(EINVALID, "section name required")
		}
		if len(section.Blocks) == 0 {
			return Errorf(EINVALID, "section %q: block selector required", section.Section)
		}
		for _, rule := range section.Fields {
			if err := rule.validate(false); err != nil {
				return Errorf(EINVALID, "section %q: %s", section.Section, ErrorMessage(err))
			}
		}
	}
	return nil
}

func (r FieldRule) validate(allowJSON bool) error {
	if r.Field == "" {
		return Errorf(EINVALID, "field name required")
	}
	if len(r.Locators) == 0 {
		return Errorf(EINVALID, "field %q: at least one locator required", r.Field)
	}
	for _, loc := range r.Locators {
		switch {
		case loc.CSS == "" && loc.JSON == "":
			return Errorf(EINVALID, "field %q: locator needs css or json", r.Field)
		case loc.CSS != "" && loc.JSON != "":
			return Errorf(EINVALID, "field %q: locator cannot set both css and json", r.Field)
		case loc.JSON != "" && !allowJSON:
			return Errorf(EINVALID, "field %q: json locators are not supported in sections", r.Field)
		case loc.JSON != "" && (loc.Attr != "" || loc.Label != "" || loc.Contains != ""):
			return Errorf(EINVALID, "field %q: attr, label and contains require css", r.Field)
		}
	}
	return nil
}

// Override returns a copy of t where every field and section named in o
// replaces the rule of the same name. Rules new to t are appended.
func (t *SelectorTable) Override(o *SelectorTable) *SelectorTable {
	out := &SelectorTable{
		Kind:      t.Kind,
		Fields:    slices.Clone(t.Fields),
		Sections:  slices.Clone(t.Sections),
		Multiple:  t.Multiple,
		MinValues: t.MinValues,
	}
	if o == nil {
		return out
	}
	if o.Multiple {
		out.Multiple = true
	}
	if o.MinValues > 0 {
		out.MinValues = o.MinValues
	}

	for _, rule := range o.Fields {
		i := slices.IndexFunc(out.Fields, func(r FieldRule) bool { return r.Field == rule.Field })
		if i >= 0 {
			out.Fields[i] = rule
		} else {
			out.Fields = append(out.Fields, rule)
		}
	}
	for _, section := range o.Sections {
		i := slices.IndexFunc(out.Sections, func(s SectionRule) bool { return s.Section == section.Section })
		if i >= 0 {
			out.Sections[i] = section
		} else {
			out.Sections = append(out.Sections, section)
		}
	}
	return out
}

// ExtractResult is everything extracted from one snapshot.
type ExtractResult struct {
	// Kind is the kind of profile the page shows, or KindUnknown when the
	// page gives no reliable hint.
	Kind Kind

	// Records holds one record per entity found, in document order.
	Records []*RawRecord

	// Dropped counts embedded entities left out for resolving too few
	// fields.
	Dropped int
}

// FieldExtractor maps one HTML snapshot to raw field values.
type FieldExtractor interface {
	// Extract parses html and locates every field of the extractor's table.
	// Fields that cannot be located are "" and sections without blocks are
	// empty; neither is an error. Returns EUNPARSEABLE only if html is not
	// markup at all.
	Extract(html []byte) (*RawRecord, error)

	// ExtractAll is like Extract but returns one record per entity on pages
	// listing several, together with the page kind.
	ExtractAll(html []byte) (*ExtractResult, error)
}
