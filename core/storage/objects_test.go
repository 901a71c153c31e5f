package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"employee-sync/core/storage"
	"employee-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type document struct {
	RunID string `json:"run_id"`
	Count int    `json:"count"`
}

func TestPutJSON(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "reports", "a.json", mock.Anything, mock.AnythingOfType("int64"),
		minio.PutObjectOptions{ContentType: "application/json"}).Return(minio.UploadInfo{}, nil)

	require.NoError(t, storage.PutJSON(context.Background(), client, "reports", "a.json", document{RunID: "r1", Count: 2}))
	assert.JSONEq(t, `{"run_id":"r1","count":2}`, string(client.Uploaded("a.json")))
}

func TestPutJSON_Error(t *testing.T) {
	client := new(mocks.Client)
	boom := errors.New("boom")
	client.On("PutObject", mock.Anything, "reports", "a.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, boom)

	err := storage.PutJSON(context.Background(), client, "reports", "a.json", document{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, client.Uploaded("a.json"))
}

func TestGetJSON(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "reports", "a.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`{"run_id":"r1","count":2}`))), nil)

	var doc document
	require.NoError(t, storage.GetJSON(context.Background(), client, "reports", "a.json", &doc))
	assert.Equal(t, document{RunID: "r1", Count: 2}, doc)
}

func TestGetJSON_Invalid(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "reports", "a.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`not json`))), nil)

	var doc document
	err := storage.GetJSON(context.Background(), client, "reports", "a.json", &doc)
	assert.ErrorContains(t, err, "failed to parse a.json")
}

func TestListKeys(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "reports", minio.ListObjectsOptions{Prefix: "runs/", Recursive: true}).
		Return(mocks.Objects("runs/b.json", "runs/notes.txt", "runs/a.json"))

	keys, err := storage.ListKeys(context.Background(), client, "reports", "runs/", ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/a.json", "runs/b.json"}, keys)
}

func TestListKeys_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "reports", mock.Anything).
		Return(mocks.FailedListing(errors.New("denied")))

	_, err := storage.ListKeys(context.Background(), client, "reports", "runs/", ".json")
	assert.ErrorContains(t, err, "denied")
}
