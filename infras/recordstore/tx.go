package recordstore

// Tx is the document as seen by one View or Update callback.
type Tx struct {
	doc      *Document
	writable bool
}

func (tx *Tx) Writable() bool {
	return tx.writable
}

// NextID reserves the next identifier of collection within the running mutation.
func (tx *Tx) NextID(collection string) (int64, error) {
	if !tx.writable {
		return 0, ErrReadOnly
	}

	return tx.doc.NextID(collection), nil
}

func Load[T any](tx *Tx, collection string) ([]T, error) {
	return DecodeCollection[T](tx.doc, collection)
}

func Save[T any](tx *Tx, collection string, records []T) error {
	if !tx.writable {
		return ErrReadOnly
	}

	return EncodeCollection(tx.doc, collection, records)
}
