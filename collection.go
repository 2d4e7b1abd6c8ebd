package linkedin

import (
	"bytes"
	"encoding/json"
	"iter"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// EntityKey derives the deduplication key for an entity name.
// Keys are NFKC-normalized, case-folded and whitespace-collapsed, so
// "Acme Corp" and " acme  CORP " share one key. Empty names give "".
func EntityKey(name string) string {
	return CollapseSpace(cases.Fold().String(norm.NFKC.String(name)))
}

// MergePolicy decides what happens when a record arrives for a key that is
// already present in a Collection.
type MergePolicy string

// Supported merge policies.
const (
	// MergeLastWriteWins replaces the stored record with the newer one.
	MergeLastWriteWins MergePolicy = "last"

	// MergeFirstWriteWins keeps the stored record and drops the newer one.
	MergeFirstWriteWins MergePolicy = "first"

	// MergeFieldFill keeps the newer record but fills its empty fields
	// from the stored one.
	MergeFieldFill MergePolicy = "fill"
)

// ParseMergePolicy returns the policy named by s. An empty string selects
// MergeLastWriteWins.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch p := MergePolicy(s); p {
	case "":
		return MergeLastWriteWins, nil
	case MergeLastWriteWins, MergeFirstWriteWins, MergeFieldFill:
		return p, nil
	}
	return "", Errorf(EINVALID, "unknown merge policy %q", s)
}

// MergeResult reports how Merge treated a record.
type MergeResult string

// Merge outcomes.
const (
	MergeInserted MergeResult = "inserted"
	MergeReplaced MergeResult = "replaced"
	MergeKept     MergeResult = "kept"
	MergeFilled   MergeResult = "filled"
)

// Collection is an insertion-ordered map from entity key to record.
// A key keeps the position of its first insertion even when its record is
// replaced later. It is not safe for concurrent use.
type Collection[T Record[T]] struct {
	policy  MergePolicy
	keys    []string
	records map[string]T
}

// NewCollection returns an empty Collection using policy for duplicates.
func NewCollection[T Record[T]](policy MergePolicy) *Collection[T] {
	if policy == "" {
		policy = MergeLastWriteWins
	}
	return &Collection[T]{
		policy:  policy,
		records: make(map[string]T),
	}
}

// Policy returns the collection's merge policy.
func (c *Collection[T]) Policy() MergePolicy {
	return c.policy
}

// Merge stores rec under key according to the collection's policy.
// Returns EINVALID if key is empty.
func (c *Collection[T]) Merge(key string, rec T) (MergeResult, error) {
	if key == "" {
		return "", Errorf(EINVALID, "entity key required")
	}
	if c.records == nil {
		c.records = make(map[string]T)
	}

	existing, ok := c.records[key]
	if !ok {
		c.keys = append(c.keys, key)
		c.records[key] = rec
		return MergeInserted, nil
	}

	switch c.policy {
	case MergeFirstWriteWins:
		return MergeKept, nil
	case MergeFieldFill:
		c.records[key] = rec.FillFrom(existing)
		return MergeFilled, nil
	default:
		c.records[key] = rec
		return MergeReplaced, nil
	}
}

// Get returns the record stored under key.
func (c *Collection[T]) Get(key string) (T, bool) {
	rec, ok := c.records[key]
	return rec, ok
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	return len(c.keys)
}

// Keys returns the entity keys in insertion order.
func (c *Collection[T]) Keys() []string {
	return append([]string(nil), c.keys...)
}

// All iterates over keys and records in insertion order.
func (c *Collection[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, key := range c.keys {
			if !yield(key, c.records[key]) {
				return
			}
		}
	}
}

// MarshalJSON finalizes the collection as a JSON object keyed by entity key,
// with keys in insertion order.
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.records[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON loads a finalized document, appending its entities in
// document order. Records missing fields get their defaults.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return Errorf(EINVALID, "invalid collection document: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Errorf(EINVALID, "collection document must be a JSON object")
	}

	if c.records == nil {
		c.records = make(map[string]T)
	}
	if c.policy == "" {
		c.policy = MergeLastWriteWins
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Errorf(EINVALID, "invalid collection document: %v", err)
		}
		key, _ := tok.(string)

		var rec T
		if err := dec.Decode(&rec); err != nil {
			return Errorf(EINVALID, "invalid record %q: %v", key, err)
		}

		var zero T
		rec = rec.FillFrom(zero)
		if _, ok := c.records[key]; !ok {
			c.keys = append(c.keys, key)
		}
		c.records[key] = rec
	}

	if _, err := dec.Token(); err != nil {
		return Errorf(EINVALID, "invalid collection document: %v", err)
	}
	return nil
}
