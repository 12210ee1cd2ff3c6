package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Provider names the S3-compatible backend
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
	ProviderCustom Provider = "custom" // MinIO, R2 and similar, needs Endpoint
)

// ErrNotConfigured is returned by a nil or unconfigured store.
var ErrNotConfigured = errors.New("object storage is not configured")

// Config holds configuration for S3-compatible storage
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string // Required for custom providers, optional override otherwise
	PublicBaseURL   string // Prefix for returned object URLs, e.g. a CDN
}

// wasabiEndpoints maps regions to Wasabi endpoints
var wasabiEndpoints = map[string]string{
	"us-east-1":      "https://s3.us-east-1.wasabisys.com",
	"us-east-2":      "https://s3.us-east-2.wasabisys.com",
	"us-west-1":      "https://s3.us-west-1.wasabisys.com",
	"eu-central-1":   "https://s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "https://s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "https://s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "https://s3.ap-southeast-1.wasabisys.com",
}

// putter is the subset of the S3 client the store needs.
type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads public image objects.
type Store struct {
	client  putter
	bucket  string
	baseURL string
	newKey  func() string
}

// Configured reports whether cfg carries enough to build a client.
func (cfg Config) Configured() bool {
	return cfg.Bucket != "" && cfg.AccessKeyID != "" && cfg.SecretAccessKey != ""
}

// NewStore builds an S3 client for cfg. It returns (nil, nil) when storage is
// not configured so callers can treat uploads as unavailable.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint, err := resolveEndpoint(cfg)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return newStore(client, cfg, endpoint), nil
}

func newStore(client putter, cfg Config, endpoint string) *Store {
	base := cfg.PublicBaseURL
	if base == "" {
		if endpoint != "" {
			base = endpoint + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(base, "/"),
		newKey:  func() string { return uuid.NewString() },
	}
}

func resolveEndpoint(cfg Config) (string, error) {
	if cfg.Endpoint != "" {
		return cfg.Endpoint, nil
	}
	switch cfg.Provider {
	case ProviderWasabi:
		if ep, ok := wasabiEndpoints[cfg.Region]; ok {
			return ep, nil
		}
		return "", fmt.Errorf("unknown Wasabi region: %s", cfg.Region)
	case ProviderCustom:
		return "", errors.New("custom storage provider requires S3_ENDPOINT")
	default:
		return "", nil
	}
}

// PutImage stores a JPEG under prefix and returns its public URL.
func (s *Store) PutImage(ctx context.Context, prefix string, data []byte) (string, error) {
	if s == nil {
		return "", ErrNotConfigured
	}
	key := path.Join(prefix, s.newKey()+".jpg")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/jpeg"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
