package data

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// ImageRepository defines the attachment object-storage operations. Image
// ids are todo ids; the same key addresses the object in both the incoming
// and the validated area.
type ImageRepository interface {
	GetImageUploadURL(ctx context.Context, imageID string) (string, error)
	GetImageAttachmentURL(imageID string) string
	GetValidatedAttachmentURL(imageID string) string
	GetImageAttachmentBody(ctx context.Context, imageID string) ([]byte, error)
	PutValidatedAttachment(ctx context.Context, imageID string, body []byte) error
	DeleteImageAttachment(ctx context.Context, imageID string) error
	DeleteValidatedAttachment(ctx context.Context, imageID string) error
}

// S3ClientInterface is the subset of the S3 client used by the dao
type S3ClientInterface interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3PresignInterface is the subset of the S3 presign client used by the dao
type S3PresignInterface interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ImageDao implements ImageRepository over the incoming and validated
// attachment buckets.
type ImageDao struct {
	S3              S3ClientInterface
	Presign         S3PresignInterface
	IncomingBucket  string
	ValidatedBucket string
	URLExpiration   time.Duration
	Logger          *logrus.Logger
}

// GetImageUploadURL returns a time-limited pre-signed URL permitting a
// direct upload into the incoming area under key imageID.
func (dao *ImageDao) GetImageUploadURL(ctx context.Context, imageID string) (string, error) {
	presigned, err := dao.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(dao.IncomingBucket),
		Key:    aws.String(imageID),
	}, s3.WithPresignExpires(dao.URLExpiration))
	if err != nil {
		return "", err
	}

	dao.Logger.WithFields(logrus.Fields{
		"image_id":  imageID,
		"operation": "GetImageUploadURL",
	}).Debug("Generated upload URL")

	return presigned.URL, nil
}

// GetImageAttachmentURL builds the public URL of an incoming object. No
// existence check is performed.
func (dao *ImageDao) GetImageAttachmentURL(imageID string) string {
	return objectURL(dao.IncomingBucket, imageID)
}

// GetValidatedAttachmentURL builds the public URL of a validated object.
// No existence check is performed.
func (dao *ImageDao) GetValidatedAttachmentURL(imageID string) string {
	return objectURL(dao.ValidatedBucket, imageID)
}

// GetImageAttachmentBody returns the raw bytes of an incoming object.
func (dao *ImageDao) GetImageAttachmentBody(ctx context.Context, imageID string) ([]byte, error) {
	output, err := dao.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(dao.IncomingBucket),
		Key:    aws.String(imageID),
	})
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()

	return io.ReadAll(output.Body)
}

// PutValidatedAttachment writes bytes into the validated area under the
// same key.
func (dao *ImageDao) PutValidatedAttachment(ctx context.Context, imageID string, body []byte) error {
	_, err := dao.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(dao.ValidatedBucket),
		Key:    aws.String(imageID),
		Body:   bytes.NewReader(body),
	})
	return err
}

// DeleteImageAttachment removes an object from the incoming area.
func (dao *ImageDao) DeleteImageAttachment(ctx context.Context, imageID string) error {
	_, err := dao.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(dao.IncomingBucket),
		Key:    aws.String(imageID),
	})
	return err
}

// DeleteValidatedAttachment removes an object from the validated area.
func (dao *ImageDao) DeleteValidatedAttachment(ctx context.Context, imageID string) error {
	_, err := dao.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(dao.ValidatedBucket),
		Key:    aws.String(imageID),
	})
	return err
}

func objectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}
