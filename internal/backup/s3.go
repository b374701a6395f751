// Package backup uploads the run-history database to S3 on a schedule.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Config holds S3 backup settings.
type Config struct {
	Bucket string
	Prefix string
	Region string
}

// Uploader uploads files to S3.
type Uploader struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
	log      zerolog.Logger
}

// NewUploader creates a new S3 uploader using the default AWS credential
// chain (environment, shared config, instance profile).
func NewUploader(ctx context.Context, cfg Config, log zerolog.Logger) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &Uploader{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		log:      log.With().Str("component", "backup").Logger(),
	}, nil
}

// UploadFile uploads a single file under prefix/<timestamp>/<basename>.
func (u *Uploader) UploadFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup source %s: %w", path, err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%s/%s", u.prefix, time.Now().UTC().Format("2006-01-02T15-04-05Z"), filepath.Base(path))

	_, err = u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", path, u.bucket, key, err)
	}

	u.log.Info().
		Str("key", key).
		Str("bucket", u.bucket).
		Msg("Database backup uploaded")

	return nil
}

// Job uploads the run-history database on a schedule.
type Job struct {
	uploader *Uploader
	dbPath   string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewJob creates a new backup job for the database at dbPath.
func NewJob(uploader *Uploader, dbPath string, log zerolog.Logger) *Job {
	return &Job{
		uploader: uploader,
		dbPath:   dbPath,
		timeout:  5 * time.Minute,
		log:      log.With().Str("job", "database_backup").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *Job) Name() string {
	return "database_backup"
}

// Run uploads the database file.
func (j *Job) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.uploader.UploadFile(ctx, j.dbPath); err != nil {
		j.log.Error().Err(err).Msg("Database backup failed")
		return err
	}
	return nil
}
