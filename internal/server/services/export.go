package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	sc "github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

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

// ExportDocument is the JSON uploaded by Export.
type ExportDocument struct {
	UserID     string         `json:"user_id"`
	ExportedAt time.Time      `json:"exported_at"`
	Notes      []*models.Note `json:"notes"`
}

// ExportService uploads a user's notes to object storage and hands back a
// temporary download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
	now         func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *ExportService {
	return &ExportService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("module", "export"),
		now:         time.Now,
	}
}

// ExportStorageKey returns the object key for an export made at t.
func ExportStorageKey(userID string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%v.json", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ExportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export writes all of the user's notes to the export bucket and returns a
// presigned GET URL for the uploaded object. A user with no notes gets
// common.ErrorNotFound.
func (s *ExportService) Export(ctx context.Context, userID string) (string, error) {
	items, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return "", s.internal(ctx, "list notes", err)
	}
	if len(items) == 0 {
		return "", common.ErrorNotFound
	}

	now := s.now()
	payload, err := json.Marshal(ExportDocument{UserID: userID, ExportedAt: now.UTC(), Notes: items})
	if err != nil {
		return "", s.internal(ctx, "encode export", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return "", s.internal(ctx, "s3 config", err)
	}

	bucket := s.config.S3Bucket
	key := ExportStorageKey(userID, now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", s.internal(ctx, "upload export", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ExportURLValidityDuration))
	if err != nil {
		return "", s.internal(ctx, "presign export", err)
	}

	s.logger.Info(ctx, "notes exported", "user_id", userID, "key", key, "count", len(items))
	return req.URL, nil
}

func (s *ExportService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}
