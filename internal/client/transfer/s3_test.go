package transfer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/worldpub/internal/client/status"
	"github.com/dmitrijs2005/worldpub/internal/common"
	"github.com/dmitrijs2005/worldpub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts      int
	created   int
	parts     int
	completed int
	aborted   int

	failPartAfter int // fail the nth UploadPart call (0 = never)
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts++
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	f.created++
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String("upl-1")}, nil
}

func (f *fakeS3) UploadPart(ctx context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	f.parts++
	if f.failPartAfter > 0 && f.parts >= f.failPartAfter {
		return nil, assert.AnError
	}
	return &s3.UploadPartOutput{ETag: aws.String("etag")}, nil
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	f.completed++
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	f.aborted++
	return &s3.AbortMultipartUploadOutput{}, nil
}

func newTestTransfer(f *fakeS3, partSize int64) *S3Transfer {
	return &S3Transfer{
		client:   f,
		bucket:   "worldpub-files",
		baseURL:  "https://files.example.com",
		partSize: partSize,
		log:      logging.NewDefault(),
	}
}

func writeTempFile(t *testing.T, size int) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bundle.bin")
	require.NoError(t, os.WriteFile(p, []byte(strings.Repeat("x", size)), 0o600))
	return p
}

func TestUploadFile_SinglePut(t *testing.T) {
	fake := &fakeS3{}
	tr := newTestTransfer(fake, 1024)

	var progress [][2]int64
	rep := status.NewReporter(status.Sinks{
		Progress: func(done, total int64) { progress = append(progress, [2]int64{done, total}) },
	})

	url, err := tr.UploadFile(context.Background(), UploadOptions{
		LocalPath:    writeTempFile(t, 100),
		FileKind:     common.FileKindAsset,
		FriendlyName: "Asset bundle",
		Reporter:     rep,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.puts)
	assert.Zero(t, fake.created)
	assert.True(t, strings.HasPrefix(url, "https://files.example.com/asset/file_"))
	assert.Equal(t, [2]int64{0, 100}, progress[0])
	assert.Equal(t, [2]int64{100, 100}, progress[len(progress)-1])
}

func TestUploadFile_Multipart_ProgressMonotonic(t *testing.T) {
	fake := &fakeS3{}
	tr := newTestTransfer(fake, 64)

	var progress [][2]int64
	rep := status.NewReporter(status.Sinks{
		Progress: func(done, total int64) { progress = append(progress, [2]int64{done, total}) },
	})

	_, err := tr.UploadFile(context.Background(), UploadOptions{
		LocalPath: writeTempFile(t, 200), // 4 parts of 64
		FileKind:  common.FileKindAsset,
		Reporter:  rep,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.created)
	assert.Equal(t, 4, fake.parts)
	assert.Equal(t, 1, fake.completed)
	assert.Zero(t, fake.aborted)

	var prev int64 = -1
	for _, p := range progress {
		assert.GreaterOrEqual(t, p[0], prev, "done must be non-decreasing")
		assert.Equal(t, int64(200), p[1], "total must stay constant")
		prev = p[0]
	}
	assert.Equal(t, int64(200), progress[len(progress)-1][0])
}

func TestUploadFile_ExistingFileIDReused(t *testing.T) {
	fake := &fakeS3{}
	tr := newTestTransfer(fake, 1024)

	url, err := tr.UploadFile(context.Background(), UploadOptions{
		LocalPath:      writeTempFile(t, 10),
		ExistingFileID: "file_2a9c8d7e-1b34-4f5a-9c0d-8e7f6a5b4c3d",
		FileKind:       common.FileKindImage,
		Reporter:       status.NewReporter(status.Sinks{}),
	})
	require.NoError(t, err)
	assert.Contains(t, url, "/image/file_2a9c8d7e-1b34-4f5a-9c0d-8e7f6a5b4c3d/")
}

func TestUploadFile_CancelledBetweenParts(t *testing.T) {
	fake := &fakeS3{}
	tr := newTestTransfer(fake, 64)

	var calls atomic.Int32
	cancelled := func() bool {
		// Trip after the first part went out.
		return calls.Add(1) > 2
	}

	_, err := tr.UploadFile(context.Background(), UploadOptions{
		LocalPath: writeTempFile(t, 300),
		FileKind:  common.FileKindAsset,
		Reporter:  status.NewReporter(status.Sinks{}),
		Cancelled: cancelled,
	})
	assert.ErrorIs(t, err, common.ErrCancelled)
	assert.Equal(t, 1, fake.aborted, "pending multipart upload must be aborted")
	assert.Zero(t, fake.completed)
	assert.Less(t, fake.parts, 5, "transfer must stop before all parts are sent")
}

func TestUploadFile_PartFailureAborts(t *testing.T) {
	fake := &fakeS3{failPartAfter: 2}
	tr := newTestTransfer(fake, 64)

	_, err := tr.UploadFile(context.Background(), UploadOptions{
		LocalPath: writeTempFile(t, 300),
		FileKind:  common.FileKindAsset,
		Reporter:  status.NewReporter(status.Sinks{}),
	})
	require.Error(t, err)
	assert.Equal(t, 1, fake.aborted)
	assert.Zero(t, fake.completed)
}

func TestUploadFile_MissingLocalFile(t *testing.T) {
	tr := newTestTransfer(&fakeS3{}, 1024)

	_, err := tr.UploadFile(context.Background(), UploadOptions{
		LocalPath: filepath.Join(t.TempDir(), "missing.bin"),
		Reporter:  status.NewReporter(status.Sinks{}),
	})
	assert.Error(t, err)
}
