package cloud

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
)

// LinkTTL is how long a shared invoice link stays valid.
const LinkTTL = 7 * 24 * time.Hour

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Uploader writes invoices to an S3-compatible bucket (AWS or MinIO).
type S3Uploader struct {
	cfg S3Config
	now func() time.Time
}

func NewS3Uploader(cfg S3Config) *S3Uploader {
	return &S3Uploader{cfg: cfg, now: time.Now}
}

func (u *S3Uploader) Channel() models.Channel { return models.ChannelS3 }

// ObjectKey is invoices/<yyyy>/<mm>/<name>.
func (u *S3Uploader) ObjectKey(name string) string {
	t := u.now()
	return path.Join("invoices", t.Format("2006"), t.Format("01"), path.Base(name))
}

func (u *S3Uploader) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(u.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.AccessKey,
			u.cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload stores a and returns its key with a presigned download link.
func (u *S3Uploader) Upload(ctx context.Context, a persist.Artifact) (Location, error) {
	c, err := u.client(ctx)
	if err != nil {
		return Location{}, err
	}

	key := u.ObjectKey(a.Name)
	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(a.Data),
		ContentType:   aws.String(a.MIMEType),
		ContentLength: aws.Int64(int64(len(a.Data))),
	})
	if err != nil {
		return Location{}, fmt.Errorf("s3 put %s: %w", key, err)
	}

	req, err := presignGetObject(newS3PresignClient(c), ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(LinkTTL))
	if err != nil {
		return Location{ID: key}, fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return Location{ID: key, URL: req.URL}, nil
}
