package task

import (
	"io"
	"sync"
	"time"

	"rockfall-console-backend/internal/model"
)

// uploadStep is how many percentage points each tick adds. Deterministic,
// not random: ten ticks to completion.
const uploadStep = 10

// UploadMeta carries the source file's descriptive fields.
type UploadMeta struct {
	Name        string
	Size        int64
	ContentType string
}

// CompletionFunc receives the device id and the constructed FileRecord when
// an upload finishes. It is invoked exactly once per upload.
type CompletionFunc func(deviceID int64, file model.FileRecord)

// Uploader drives client-side upload simulations.
type Uploader struct {
	// Tick is the simulation cadence, 200ms in the console.
	Tick time.Duration

	now func() time.Time
}

// NewUploader creates an uploader with the given tick cadence.
func NewUploader(tick time.Duration) *Uploader {
	return &Uploader{Tick: tick, now: time.Now}
}

// Upload is the handle for one in-flight upload simulation.
type Upload struct {
	*Task

	stop     chan struct{}
	stopOnce sync.Once
}

// Start reads the file (CSV imports are parsed up front, before any progress
// is shown) and begins the tick loop. onComplete fires once when progress
// reaches 100; a cancelled upload never fires it.
func (u *Uploader) Start(deviceID int64, meta UploadMeta, importType model.ImportType, content io.Reader, onComplete CompletionFunc) (*Upload, error) {
	record := model.FileRecord{
		Name:       meta.Name,
		Size:       meta.Size,
		Type:       meta.ContentType,
		UploadedAt: u.now().UTC(),
		ImportType: importType,
	}

	switch importType {
	case model.ImportCSV:
		raw, err := io.ReadAll(content)
		if err != nil {
			return nil, &UploadReadError{Name: meta.Name, Err: err}
		}
		parsed := ParseCSV(string(raw))
		record.ParsedData = &parsed
	case model.ImportImages:
		// The preview is a handle into the static asset namespace, keyed by
		// the file name. No bytes are retained.
		record.Preview = meta.Name
	}

	up := &Upload{
		Task: newTask("Uploading " + meta.Name),
		stop: make(chan struct{}),
	}

	go u.run(up, deviceID, record, onComplete)
	return up, nil
}

func (u *Uploader) run(up *Upload, deviceID int64, record model.FileRecord, onComplete CompletionFunc) {
	ticker := time.NewTicker(u.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-up.stop:
			return
		case <-ticker.C:
			if !up.advance() {
				continue
			}
			if onComplete != nil {
				onComplete(deviceID, record)
			}
			up.closeDone()
			return
		}
	}
}

// advance adds one step and reports whether the upload just reached 100%.
// A tick that fires after cancellation changes nothing.
func (up *Upload) advance() bool {
	up.mu.Lock()
	defer up.mu.Unlock()
	if up.cancelled || up.complete {
		return false
	}
	up.progress += uploadStep
	if up.progress < 100 {
		return false
	}
	up.progress = 100
	up.complete = true
	up.status = "Upload complete"
	return true
}

// Cancel stops the tick loop synchronously. Progress stays at its value at
// cancel time and the completion callback never fires.
func (up *Upload) Cancel() {
	up.markCancelled()
	up.stopOnce.Do(func() { close(up.stop) })
	up.closeDone()
}
