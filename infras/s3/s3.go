package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrPreconditionFailed = errors.New("object changed since it was read")
)

// S3 stores whole objects with ETag-conditional writes.
type S3 interface {
	GetObject(ctx context.Context, directory, objectName string) (body []byte, etag string, err error)
	// PutObject writes only if the stored ETag still equals ifMatch; an empty ifMatch requires the object to be absent.
	PutObject(ctx context.Context, directory, objectName, contentType string, body []byte, ifMatch string) (etag string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) GetObject(ctx context.Context, directory, objectName string) (body []byte, etag string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".GetObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName := svc.Config.External.S3.BucketName
	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	out, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) || apiErrorCode(err) == "NotFound" {
			return nil, constant.Empty, ErrObjectNotFound
		}

		log.Error().Err(err).Str("key", objectKey).Msg("failed to get object from S3")

		return nil, constant.Empty, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer out.Body.Close()

	body, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, constant.Empty, fmt.Errorf("failed to read object body: %w", err)
	}

	return body, aws.ToString(out.ETag), nil
}

func (svc *s3Impl) PutObject(ctx context.Context, directory, objectName, contentType string, body []byte, ifMatch string) (etag string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName := svc.Config.External.S3.BucketName
	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	}

	if ifMatch != constant.Empty {
		input.IfMatch = aws.String(ifMatch)
	} else {
		input.IfNoneMatch = aws.String(constant.Asterix)
	}

	out, err := svc.Client.PutObject(ctx, input)
	if err != nil {
		if IsPreconditionFailed(err) {
			return constant.Empty, ErrPreconditionFailed
		}

		log.Error().Err(err).Str("key", objectKey).Msg("failed to put object to S3")

		return constant.Empty, fmt.Errorf("failed to put object to S3: %w", err)
	}

	return aws.ToString(out.ETag), nil
}

// IsPreconditionFailed reports whether err is a rejected conditional write.
func IsPreconditionFailed(err error) bool {
	switch apiErrorCode(err) {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}

	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusPreconditionFailed
	}

	return false
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}

	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) (S3, error) {
	endpoint := config.External.S3.APIEndpoint
	accessKeyID := config.External.S3.AccessKeyID
	secretAccessKey := config.External.S3.SecretAccessKey

	staticProvider := credentials.NewStaticCredentialsProvider(
		accessKeyID,
		secretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(config.External.S3.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")

		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != constant.Empty {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}, nil
}
