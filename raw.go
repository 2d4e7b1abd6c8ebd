package linkedin

// RawRecord holds unnormalized strings pulled directly from markup.
// Every field named by the extractor's selector table is present in Fields,
// with "" when no locator matched.
type RawRecord struct {
	Fields map[string]string

	// Sections holds repeating blocks (e.g. "experience") in document order.
	Sections map[string][]map[string]string
}

// NewRawRecord returns an empty RawRecord ready for use.
func NewRawRecord() *RawRecord {
	return &RawRecord{
		Fields:   make(map[string]string),
		Sections: make(map[string][]map[string]string),
	}
}

// Get returns the raw value for field, or "" if absent.
// It is safe to call on a nil RawRecord.
func (r *RawRecord) Get(field string) string {
	if r == nil {
		return ""
	}
	return r.Fields[field]
}

// Section returns the blocks extracted for a repeating section.
func (r *RawRecord) Section(name string) []map[string]string {
	if r == nil {
		return nil
	}
	return r.Sections[name]
}
