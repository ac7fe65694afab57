package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"loyaltypro/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client wraps the S3-compatible object store that holds tenant icons and
// user avatars. Works against AWS S3, MinIO and the Supabase storage gateway.
type Client struct {
	s3Client *s3.S3
}

type BucketInfo struct {
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO / Supabase storage for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{s3Client: s3.New(sess)}, nil
}

// ListBuckets returns the names of all buckets visible to the credentials.
func (c *Client) ListBuckets() ([]BucketInfo, error) {
	out, err := c.s3Client.ListBuckets(&s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	buckets := make([]BucketInfo, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, BucketInfo{Name: aws.StringValue(b.Name)})
	}
	return buckets, nil
}

// BucketExists reports whether the named bucket is reachable.
func (c *Client) BucketExists(name string) (bool, error) {
	_, err := c.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, "NotFound", "Forbidden":
				return false, nil
			}
		}
		return false, fmt.Errorf("failed to head bucket %s: %w", name, err)
	}
	return true, nil
}

// EnsureBucket creates the named bucket when it does not exist yet.
// Public buckets additionally get a read-all policy.
func (c *Client) EnsureBucket(name string, public bool) error {
	exists, err := c.BucketExists(name)
	if err != nil {
		return err
	}
	if !exists {
		_, err = c.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			if aerr, ok := err.(awserr.Error); ok {
				switch aerr.Code() {
				case s3.ErrCodeBucketAlreadyExists, s3.ErrCodeBucketAlreadyOwnedByYou:
					// Created concurrently, nothing to do
				default:
					return fmt.Errorf("failed to create bucket %s: %w", name, err)
				}
			} else {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
	}

	if public {
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":"*","Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, name)
		_, err = c.s3Client.PutBucketPolicy(&s3.PutBucketPolicyInput{
			Bucket: aws.String(name),
			Policy: aws.String(policy),
		})
		if err != nil {
			return fmt.Errorf("failed to set bucket policy for %s: %w", name, err)
		}
	}

	return nil
}

// UploadFile stores an object and returns its public URL.
func (c *Client) UploadFile(bucket, key string, file io.Reader, contentType string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return c.ObjectURL(bucket, key), nil
}

func (c *Client) DeleteFile(bucket, key string) error {
	_, err := c.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ObjectURL builds the externally reachable URL of an object, accounting for
// custom endpoints (MinIO, Supabase) versus plain AWS S3.
func (c *Client) ObjectURL(bucket, key string) string {
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if c.s3Client.Config.DisableSSL != nil && *c.s3Client.Config.DisableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, bucket, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
