package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Config configures access to the bucket holding the price file
type S3Config struct {
	Region          string
	AccessKeyID     string // Optional; default credential chain when empty
	SecretAccessKey string
	Endpoint        string // Optional; S3-compatible stores (MinIO etc.)
}

// NewS3Client builds an S3 client from the shared AWS configuration
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Source downloads CSV objects addressed as s3://bucket/key
func NewS3Source(client manager.DownloadAPIClient, log zerolog.Logger) Source {
	downloader := manager.NewDownloader(client)
	return &csvSource{
		log: log.With().Str("source", "s3").Logger(),
		open: func(ctx context.Context, locator string) (io.ReadCloser, error) {
			bucket, key, err := parseS3Locator(locator)
			if err != nil {
				return nil, err
			}

			buf := manager.NewWriteAtBuffer(nil)
			if _, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}); err != nil {
				return nil, fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
			}
			return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
		},
	}
}

func parseS3Locator(locator string) (string, string, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 locator: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 locator %q (want s3://bucket/key)", locator)
	}
	return u.Host, key, nil
}
