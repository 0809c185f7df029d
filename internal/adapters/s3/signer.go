package s3adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/smokemap/smokemap/internal/core/ports"
	appconfig "github.com/smokemap/smokemap/internal/pkg/config"
)

// UploadSigner issues presigned S3 PUT URLs so clients upload spot
// photos directly without the object bytes crossing the API.
type UploadSigner struct {
	presign *s3.PresignClient
	bucket  string
	region  string
	prefix  string
	expiry  time.Duration
}

// NewUploadSigner builds a signer from the ambient AWS credential chain.
func NewUploadSigner(ctx context.Context, cfg appconfig.UploadsConfig) (*UploadSigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &UploadSigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		prefix:  cfg.Prefix,
		expiry:  time.Duration(cfg.ExpirySeconds) * time.Second,
	}, nil
}

// SignUpload returns a presigned PUT URL for a single photo object.
func (u *UploadSigner) SignUpload(ctx context.Context, contentType string) (*ports.UploadTarget, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", ports.ErrUnsupportedMedia, contentType)
	}

	key := fmt.Sprintf("%s%s%s", u.prefix, uuid.New().String(), ext)
	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(u.expiry))
	if err != nil {
		return nil, fmt.Errorf("presign put object: %w", err)
	}

	return &ports.UploadTarget{
		UploadURL: req.URL,
		Key:       key,
		PublicURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key),
		ExpiresIn: int(u.expiry.Seconds()),
	}, nil
}

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}
