package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/worldpub/internal/client/config"
	"github.com/dmitrijs2005/worldpub/internal/client/status"
	"github.com/dmitrijs2005/worldpub/internal/common"
	"github.com/dmitrijs2005/worldpub/internal/logging"
)

// MinPartSize is the smallest chunk S3 accepts for a non-final multipart
// part.
const MinPartSize = int64(5 * 1024 * 1024)

// Seams for tests (same approach the rest of the project takes with AWS
// client construction).
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3API is the subset of *s3.Client the transfer uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateMultipartUpload(ctx context.Context, in *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, in *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, in *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, in *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
}

// S3Transfer uploads artifacts with chunked multipart transfers, reporting
// per-chunk progress and checking the cancellation token between chunks.
type S3Transfer struct {
	client   s3API
	bucket   string
	baseURL  string
	partSize int64
	log      logging.Logger
}

// NewS3Transfer builds a transfer against the file store configured in cfg
// (an S3-compatible endpoint, e.g. MinIO).
func NewS3Transfer(ctx context.Context, cfg *config.Config, log logging.Logger) (*S3Transfer, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.FileEndpoint)
		o.UsePathStyle = true
	})

	partSize := cfg.PartSize
	if partSize < MinPartSize {
		partSize = MinPartSize
	}

	return &S3Transfer{
		client:   client,
		bucket:   cfg.S3Bucket,
		baseURL:  cfg.FileBaseURL,
		partSize: partSize,
		log:      log,
	}, nil
}

func (t *S3Transfer) UploadFile(ctx context.Context, opts UploadOptions) (string, error) {
	cancelled := opts.Cancelled
	if cancelled == nil {
		cancelled = status.NeverCancelled
	}

	f, err := os.Open(opts.LocalPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", opts.LocalPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", opts.LocalPath, err)
	}
	total := info.Size()

	fileID := opts.ExistingFileID
	if fileID == "" {
		fileID = "file_" + uuid.NewString()
	}
	key := path.Join(opts.FileKind, fileID, filepath.Base(opts.LocalPath))

	opts.Reporter.SetStatus("Uploading "+opts.FriendlyName+"...", humanize.Bytes(uint64(total)), "")
	opts.Reporter.SetUploadProgress(0, total)

	if cancelled() {
		return "", common.ErrCancelled
	}

	if total <= t.partSize {
		if err := t.putSingle(ctx, f, key, total, opts); err != nil {
			return "", err
		}
	} else {
		if err := t.putMultipart(ctx, f, key, total, opts, cancelled); err != nil {
			return "", err
		}
	}

	return t.baseURL + "/" + key, nil
}

func (t *S3Transfer) putSingle(ctx context.Context, f *os.File, key string, total int64, opts UploadOptions) error {
	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	opts.Reporter.SetUploadProgress(total, total)
	return nil
}

func (t *S3Transfer) putMultipart(ctx context.Context, f *os.File, key string, total int64, opts UploadOptions, cancelled status.CancelToken) error {
	created, err := t.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("create multipart upload: %w", err)
	}
	uploadID := created.UploadId

	abort := func() {
		_, abortErr := t.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(t.bucket),
			Key:      aws.String(key),
			UploadId: uploadID,
		})
		if abortErr != nil {
			t.log.Warn(ctx, "abort multipart upload", "key", key, "error", abortErr)
		}
	}

	var (
		completed []types.CompletedPart
		done      int64
		buf       = make([]byte, t.partSize)
	)

	for partNumber := int32(1); done < total; partNumber++ {
		if cancelled() {
			abort()
			return common.ErrCancelled
		}

		n, readErr := io.ReadFull(f, buf)
		if readErr == io.ErrUnexpectedEOF || readErr == io.EOF {
			readErr = nil
		}
		if readErr != nil {
			abort()
			return fmt.Errorf("read part %d: %w", partNumber, readErr)
		}
		if n == 0 {
			break
		}

		part, err := t.client.UploadPart(ctx, &s3.UploadPartInput{
			Bucket:     aws.String(t.bucket),
			Key:        aws.String(key),
			UploadId:   uploadID,
			PartNumber: aws.Int32(partNumber),
			Body:       bytes.NewReader(buf[:n]),
		})
		if err != nil {
			abort()
			return fmt.Errorf("upload part %d: %w", partNumber, err)
		}

		completed = append(completed, types.CompletedPart{
			ETag:       part.ETag,
			PartNumber: aws.Int32(partNumber),
		})

		done += int64(n)
		opts.Reporter.SetUploadProgress(done, total)
	}

	_, err = t.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(t.bucket),
		Key:      aws.String(key),
		UploadId: uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		abort()
		return fmt.Errorf("complete multipart upload: %w", err)
	}
	return nil
}
