package recordstore

import (
	"bytes"
	"errors"
	"fmt"
	"maps"

	"github.com/goccy/go-json"
)

const (
	keyVersion   = "_version"
	keySequences = "_sequences"
)

var (
	ErrCorruptDocument = errors.New("record document is corrupt")
	ErrVersionConflict = errors.New("record document was modified concurrently")
	ErrReadOnly        = errors.New("record document opened read-only")
)

// Document is the single persisted JSON object holding every collection.
// Collections are kept encoded and only decoded by the repository that owns them.
type Document struct {
	// Version is the version the document had when it was read. Backends compare it on write.
	Version int64
	// Revision is an opaque backend token (an S3 ETag) read alongside Version.
	Revision string

	sequences   map[string]int64
	collections map[string]json.RawMessage
}

func NewDocument() *Document {
	return &Document{
		sequences:   map[string]int64{},
		collections: map[string]json.RawMessage{},
	}
}

// NextID advances and returns the identifier counter of collection.
func (d *Document) NextID(collection string) int64 {
	d.sequences[collection]++

	return d.sequences[collection]
}

// Sequence returns the last identifier issued for collection.
func (d *Document) Sequence(collection string) int64 {
	return d.sequences[collection]
}

// Collections lists the collections present in the document.
func (d *Document) Collections() []string {
	names := make([]string, 0, len(d.collections))
	for name := range d.collections {
		names = append(names, name)
	}

	return names
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.collections)+2)
	maps.Copy(out, d.collections)

	version, err := json.Marshal(d.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document version: %w", err)
	}

	sequences, err := json.Marshal(d.sequences)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document sequences: %w", err)
	}

	out[keyVersion] = version
	out[keySequences] = sequences

	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}

	doc := NewDocument()

	if version, ok := raw[keyVersion]; ok {
		if err := json.Unmarshal(version, &doc.Version); err != nil {
			return fmt.Errorf("%w: bad %s: %w", ErrCorruptDocument, keyVersion, err)
		}

		delete(raw, keyVersion)
	}

	if sequences, ok := raw[keySequences]; ok {
		if err := json.Unmarshal(sequences, &doc.sequences); err != nil {
			return fmt.Errorf("%w: bad %s: %w", ErrCorruptDocument, keySequences, err)
		}

		if doc.sequences == nil {
			doc.sequences = map[string]int64{}
		}

		delete(raw, keySequences)
	}

	for name, collection := range raw {
		if !bytes.HasPrefix(bytes.TrimSpace(collection), []byte("[")) {
			return fmt.Errorf("%w: collection %q is not an array", ErrCorruptDocument, name)
		}
	}

	doc.collections = raw
	*d = *doc

	return nil
}

// Encode serializes the document with its version advanced by one, as it will be persisted.
func Encode(doc *Document) ([]byte, error) {
	next := *doc
	next.Version++

	data, err := json.Marshal(&next)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	return data, nil
}

// Decode parses a persisted document. Empty input yields a fresh document.
func Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return doc, nil
}

// DecodeCollection returns the records of one collection; a missing collection is empty.
func DecodeCollection[T any](doc *Document, collection string) ([]T, error) {
	records := []T{}

	raw, ok := doc.collections[collection]
	if !ok {
		return records, nil
	}

	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: collection %q: %w", ErrCorruptDocument, collection, err)
	}

	return records, nil
}

// EncodeCollection replaces one collection.
func EncodeCollection[T any](doc *Document, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", collection, err)
	}

	doc.collections[collection] = raw

	return nil
}
