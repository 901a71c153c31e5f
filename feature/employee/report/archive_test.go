package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"employee-sync/core/reconcile"
	"employee-sync/core/storage/mocks"
	"employee-sync/feature/employee/runstate"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleReport() *Report {
	started := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	return &Report{
		RunID:      "run-1",
		Mode:       runstate.ModeFullAudit,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Successful: true,
		Summary:    reconcile.Summary{External: 10, Joined: 1, Updated: 3},
	}
}

func TestArchiver_ObjectName(t *testing.T) {
	a := NewArchiver(nil, "bucket", "", "/reports/", 0, zap.NewNop())
	assert.Equal(t, "reports/20240610T080000Z_run-1.json", a.ObjectName(sampleReport()))

	a = NewArchiver(nil, "bucket", "", "", 0, zap.NewNop())
	assert.Equal(t, "20240610T080000Z_run-1.json", a.ObjectName(sampleReport()))
}

func TestArchiver_Archive(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "sync", "eu-west-1", "reports", 2, zap.NewNop())
	r := sampleReport()

	client.On("BucketExists", mock.Anything, "sync").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "sync", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)
	client.On("PutObject", mock.Anything, "sync", "reports/20240610T080000Z_run-1.json", mock.Anything, mock.AnythingOfType("int64"), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/json"
	})).Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "sync", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).
		Return(mocks.Objects(
			"reports/20240608T080000Z_run-a.json",
			"reports/20240610T080000Z_run-1.json",
			"reports/20240609T080000Z_run-b.json",
			"reports/README.txt",
		))
	client.On("RemoveObject", mock.Anything, "sync", "reports/20240608T080000Z_run-a.json", minio.RemoveObjectOptions{}).Return(nil)

	require.NoError(t, a.Archive(context.Background(), r))
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "RemoveObject", 1)

	var stored Report
	require.NoError(t, json.Unmarshal(client.Uploaded("reports/20240610T080000Z_run-1.json"), &stored))
	assert.Equal(t, "run-1", stored.RunID)
	assert.Equal(t, runstate.ModeFullAudit, stored.Mode)
	assert.Equal(t, 1, stored.Summary.Joined)
}

func TestArchiver_ArchiveUploadError(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "sync", "", "reports", 0, zap.NewNop())
	boom := errors.New("access denied")

	client.On("BucketExists", mock.Anything, "sync").Return(true, nil)
	client.On("PutObject", mock.Anything, "sync", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, boom)

	err := a.Archive(context.Background(), sampleReport())
	assert.ErrorIs(t, err, boom)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiver_Latest(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "sync", "", "reports", 0, zap.NewNop())
	want := sampleReport()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	client.On("ListObjects", mock.Anything, "sync", mock.Anything).
		Return(mocks.Objects("reports/20240609T080000Z_run-b.json", "reports/20240610T080000Z_run-1.json"))
	client.On("GetObject", mock.Anything, "sync", "reports/20240610T080000Z_run-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	got, err := a.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 90*time.Second, got.Duration())
	assert.Equal(t, 3, got.Summary.Updated)
}

func TestArchiver_LatestEmpty(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "sync", "", "reports", 0, zap.NewNop())
	client.On("ListObjects", mock.Anything, "sync", mock.Anything).Return(mocks.Objects())

	got, err := a.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArchiver_ListError(t *testing.T) {
	client := new(mocks.Client)
	a := NewArchiver(client, "sync", "", "reports", 0, zap.NewNop())

	client.On("ListObjects", mock.Anything, "sync", mock.Anything).Return(mocks.FailedListing(errors.New("listing failed")))

	_, err := a.Latest(context.Background())
	assert.ErrorContains(t, err, "listing failed")
}
