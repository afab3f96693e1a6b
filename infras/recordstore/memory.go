package recordstore

import (
	"context"
	"sync"
)

type memoryBackend struct {
	mu      sync.Mutex
	data    []byte
	version int64
}

// NewMemoryBackend keeps the encoded document in process memory.
func NewMemoryBackend() Backend {
	return &memoryBackend{}
}

func (m *memoryBackend) ReadDocument(_ context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := Decode(m.data)
	if err != nil {
		return nil, err
	}

	doc.Version = m.version

	return doc, nil
}

func (m *memoryBackend) WriteDocument(_ context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if doc.Version != m.version {
		return ErrVersionConflict
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	m.data = data
	m.version++
	doc.Version = m.version

	return nil
}

func (m *memoryBackend) Close() error {
	return nil
}
