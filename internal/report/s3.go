package report

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/reactor/internal/config"
	"github.com/vango-dev/reactor/internal/errors"
)

// S3Sink uploads reports to an S3 object.
type S3Sink struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Sink creates a sink uploading to bucket/key. cfg.Prefix is prepended
// to the key.
func NewS3Sink(cfg config.S3Config, bucket, key string) *S3Sink {
	opts := s3.Options{
		Region:                     cfg.Region,
		Credentials:                envCredentials(),
		UsePathStyle:               cfg.PathStyle,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if cfg.Prefix != "" {
		key = path.Join(cfg.Prefix, key)
	}
	return &S3Sink{
		client: s3.New(opts),
		bucket: bucket,
		key:    key,
	}
}

// envCredentials reads static credentials from the standard AWS variables.
func envCredentials() aws.CredentialsProvider {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	creds := aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}
	return aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return creds, nil
	}))
}

// Write implements Sink.
func (s *S3Sink) Write(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.New("E102").WithDetail("uploading " + s.String()).Wrap(err)
	}
	return nil
}

func (s *S3Sink) String() string {
	return "s3://" + s.bucket + "/" + s.key
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" {
		return "", "", errors.New("E102").
			WithDetailf("%q is not an s3:// URL", raw)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", errors.New("E102").
			WithDetailf("%q must name a bucket and a key", raw).
			WithSuggestion("Use s3://bucket/path/to/report.json")
	}
	return u.Host, key, nil
}
