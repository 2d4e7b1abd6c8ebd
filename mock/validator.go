package mock

import "github.com/SACCSF/linkedin"

var _ linkedin.RecordValidator = (*RecordValidator)(nil)

// RecordValidator is a mock implementation of linkedin.RecordValidator.
type RecordValidator struct {
	ValidateRecordFn func(rec any) error
}

func (v *RecordValidator) ValidateRecord(rec any) error {
	return v.ValidateRecordFn(rec)
}

var _ linkedin.DocumentValidator = (*DocumentValidator)(nil)

// DocumentValidator is a mock implementation of linkedin.DocumentValidator.
type DocumentValidator struct {
	ValidateDocumentFn func(kind linkedin.Kind, data []byte) error
}

func (v *DocumentValidator) ValidateDocument(kind linkedin.Kind, data []byte) error {
	return v.ValidateDocumentFn(kind, data)
}
