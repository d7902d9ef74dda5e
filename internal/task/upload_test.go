package task

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockfall-console-backend/internal/model"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk unplugged")
}

func TestUploader_CompletesExactlyOnce(t *testing.T) {
	u := NewUploader(time.Millisecond)

	var calls int32
	var gotDevice int64
	var gotFile model.FileRecord

	up, err := u.Start(7, UploadMeta{Name: "survey.csv", Size: 128, ContentType: "text/csv"},
		model.ImportCSV, strings.NewReader("a,b\n1,2\n3,4"),
		func(deviceID int64, file model.FileRecord) {
			atomic.AddInt32(&calls, 1)
			gotDevice = deviceID
			gotFile = file
		})
	require.NoError(t, err)

	select {
	case <-up.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("upload did not complete")
	}
	// Give any stray tick a chance to fire before counting.
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "completion must fire exactly once")
	assert.Equal(t, int64(7), gotDevice)
	assert.Equal(t, "survey.csv", gotFile.Name)
	assert.Equal(t, int64(128), gotFile.Size)
	assert.Equal(t, "text/csv", gotFile.Type)
	require.NotNil(t, gotFile.ParsedData)
	assert.Equal(t, []string{"a", "b"}, gotFile.ParsedData.Headers)
	assert.Equal(t, []map[string]string{{"a": "1", "b": "2"}, {"a": "3", "b": "4"}}, gotFile.ParsedData.Rows)

	snap := up.Snapshot()
	assert.Equal(t, 100, snap.Progress)
	assert.True(t, snap.Complete)
}

func TestUpload_CancelMidway(t *testing.T) {
	// A tick cadence long enough that the loop never fires on its own; ticks
	// are driven by hand so the cancel point is exact.
	u := NewUploader(time.Hour)

	var calls int32
	up, err := u.Start(1, UploadMeta{Name: "notes.txt", Size: 10, ContentType: "text/plain"},
		model.ImportJSON, strings.NewReader(""),
		func(int64, model.FileRecord) { atomic.AddInt32(&calls, 1) })
	require.NoError(t, err)
	defer up.Cancel()

	for i := 0; i < 4; i++ {
		up.advance()
	}
	assert.Equal(t, 40, up.Snapshot().Progress)

	up.Cancel()

	// A late-scheduled tick firing after cancellation must change nothing.
	assert.False(t, up.advance())
	snap := up.Snapshot()
	assert.Equal(t, 40, snap.Progress, "progress must not move past the cancel point")
	assert.False(t, snap.Complete)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "a cancelled upload never completes")
	assert.True(t, up.Cancelled())
}

func TestUploader_ReadError(t *testing.T) {
	u := NewUploader(time.Millisecond)

	up, err := u.Start(1, UploadMeta{Name: "broken.csv", Size: 1, ContentType: "text/csv"},
		model.ImportCSV, failingReader{}, nil)

	var rerr *UploadReadError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "broken.csv", rerr.Name)
	assert.Nil(t, up, "no task is created when the file cannot be read")
}

func TestUploader_ImagePreviewHandle(t *testing.T) {
	u := NewUploader(time.Millisecond)

	done := make(chan model.FileRecord, 1)
	_, err := u.Start(2, UploadMeta{Name: "slope.png", Size: 4096, ContentType: "image/png"},
		model.ImportImages, strings.NewReader("png-bytes"),
		func(_ int64, file model.FileRecord) { done <- file })
	require.NoError(t, err)

	select {
	case file := <-done:
		assert.Equal(t, "slope.png", file.Preview)
		assert.Nil(t, file.ParsedData)
	case <-time.After(2 * time.Second):
		t.Fatal("upload did not complete")
	}
}
