package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func (f *fakeS3) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported")
}

func TestNewS3Store_Validation(t *testing.T) {
	_, err := NewS3Store(newFakeS3(), "", "db.json")
	assert.Error(t, err)

	_, err = NewS3Store(newFakeS3(), "bucket", " / ")
	assert.Error(t, err)

	store, err := NewS3Store(newFakeS3(), "bucket", "/notes/db.json")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/notes/db.json", store.Location())
}

func TestS3Store_RoundTrip(t *testing.T) {
	client := newFakeS3()
	store, err := NewS3Store(client, "bucket", "notes/db.json")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Read(ctx)
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, store.Write(ctx, []byte(`{"users":[],"notes":[]}`)))
	assert.Contains(t, client.objects, "bucket/notes/db.json")

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[],"notes":[]}`, string(got))
}

func TestS3Store_ReadError(t *testing.T) {
	client := newFakeS3()
	client.getErr = errors.New("access denied")
	store, err := NewS3Store(client, "bucket", "db.json")
	require.NoError(t, err)

	_, err = store.Read(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotExist)
	assert.Contains(t, err.Error(), "access denied")
}
