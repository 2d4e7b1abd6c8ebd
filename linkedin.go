// Package linkedin extracts company and person profiles from saved HTML
// snapshots of LinkedIn pages and consolidates them into one JSON document
// per entity type.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package linkedin

// Kind identifies which pipeline a snapshot belongs to.
type Kind string

// Supported entity kinds.
const (
	KindUnknown Kind = ""
	KindCompany Kind = "company"
	KindPerson  Kind = "person"
)

// DefaultOutput returns the output file name used when none is configured.
func (k Kind) DefaultOutput() string {
	switch k {
	case KindCompany:
		return "companies.json"
	case KindPerson:
		return "persons.json"
	}
	return "entities.json"
}
