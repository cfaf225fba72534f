package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"valortracker/core/storage/mocks"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/henrik/henriktest"
	"valortracker/feature/matches/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "matches/eu/m1.json", Key("eu", "m1"))
	assert.Equal(t, "matches/unknown/m1.json", Key("", "m1"))
}

func TestArchive(t *testing.T) {
	raw := henriktest.Match("m1", 13, 8, henriktest.Roster("a", "b")...)

	m := new(mocks.Client)
	m.On("PutObject", mock.Anything, "bucket", "matches/eu/m1.json", mock.Anything, int64(len(raw.Raw)),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, New(m, "bucket").Archive(context.Background(), "eu", raw))
	m.AssertExpectations(t)
}

func TestArchive_Errors(t *testing.T) {
	m := new(mocks.Client)
	a := New(m, "bucket")

	assert.Error(t, a.Archive(context.Background(), "eu", henrik.RawMatch{}))
	m.AssertNotCalled(t, "PutObject")

	raw := henriktest.Match("m1", 13, 8, henriktest.Roster("a", "b")...)
	m.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))
	err := a.Archive(context.Background(), "eu", raw)
	assert.ErrorContains(t, err, "denied")
}

func TestLoad(t *testing.T) {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "bucket", "matches/eu/m1.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader([]byte(`{"metadata":{}}`))), nil)

	data, err := New(m, "bucket").Load(context.Background(), "eu", "m1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"metadata":{}}`, string(data))
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }
func (f failingReader) Close() error             { return nil }

func TestLoad_Missing(t *testing.T) {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "bucket", "matches/eu/gone.json", minio.GetObjectOptions{}).
		Return(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}}, nil)

	_, err := New(m, "bucket").Load(context.Background(), "eu", "gone")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
