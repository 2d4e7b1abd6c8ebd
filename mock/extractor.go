package mock

import "github.com/SACCSF/linkedin"

var _ linkedin.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of linkedin.FieldExtractor.
type FieldExtractor struct {
	ExtractFn    func(html []byte) (*linkedin.RawRecord, error)
	ExtractAllFn func(html []byte) (*linkedin.ExtractResult, error)
}

func (e *FieldExtractor) Extract(html []byte) (*linkedin.RawRecord, error) {
	return e.ExtractFn(html)
}

func (e *FieldExtractor) ExtractAll(html []byte) (*linkedin.ExtractResult, error) {
	return e.ExtractAllFn(html)
}
