package linkedin

// Record is implemented by the normalized entity types stored in a Collection.
type Record[T any] interface {
	// EntityName returns the identifying name the entity key is derived from.
	EntityName() string

	// FillFrom returns a copy of the receiver with every empty field taken
	// from older. Non-empty fields of the receiver are never replaced.
	FillFrom(older T) T
}

// RecordValidator checks a normalized record before it enters a Collection.
type RecordValidator interface {
	// ValidateRecord returns EINVALID if the record breaks a field constraint.
	ValidateRecord(rec any) error
}

// DocumentValidator checks a finalized JSON document before it is committed.
type DocumentValidator interface {
	// ValidateDocument returns EINVALID if data does not match the output
	// schema for kind.
	ValidateDocument(kind Kind, data []byte) error
}
