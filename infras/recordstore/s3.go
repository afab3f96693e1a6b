package recordstore

import (
	"context"
	"errors"
	"hotelier/infras/s3"
	"hotelier/shared/constant"
)

const s3Directory = "recordstore"

type s3Backend struct {
	client s3.S3
	object string
}

// NewS3Backend keeps the document as one object and uses its ETag for conditional writes.
func NewS3Backend(client s3.S3, name string) Backend {
	return &s3Backend{client: client, object: name + ".json"}
}

func (b *s3Backend) ReadDocument(ctx context.Context) (*Document, error) {
	body, etag, err := b.client.GetObject(ctx, s3Directory, b.object)
	if errors.Is(err, s3.ErrObjectNotFound) {
		return NewDocument(), nil
	}

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	doc, err := Decode(body)
	if err != nil {
		return nil, err
	}

	doc.Revision = etag

	return doc, nil
}

func (b *s3Backend) WriteDocument(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	etag, err := b.client.PutObject(ctx, s3Directory, b.object, constant.ContentTypeJSON, data, doc.Revision)
	if errors.Is(err, s3.ErrPreconditionFailed) {
		return ErrVersionConflict
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	doc.Version++
	doc.Revision = etag

	return nil
}

func (b *s3Backend) Close() error {
	return nil
}
