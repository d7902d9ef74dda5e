package registry

import (
	"sync"
	"time"

	"rockfall-console-backend/internal/model"
)

// Op identifies which mutation triggered a change notification.
type Op string

const (
	OpAdd          Op = "add"
	OpUpdateConfig Op = "update_config"
	OpDelete       Op = "delete"
	OpAttachFile   Op = "attach_file"
	OpDetachFile   Op = "detach_file"
)

// Event is delivered to observers after every successful mutation so that
// independent views (grid, modals, notification worker) stay consistent.
type Event struct {
	Op       Op
	DeviceID int64
}

// Registry holds the authoritative in-memory list of devices for the current
// session. All state is lost on restart; persistence is deliberately out of
// scope here and delegated to collaborators.
type Registry struct {
	mu        sync.RWMutex
	devices   []model.Device
	observers []func(Event)

	// now is swappable in tests.
	now func() time.Time
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{now: time.Now}
}

// NewSeeded creates a registry pre-populated with the default instrument set.
func NewSeeded() *Registry {
	r := New()
	for _, d := range defaultDevices() {
		d.LastUpdated = r.now().UTC()
		r.devices = append(r.devices, d)
	}
	return r
}

// OnChange registers an observer invoked after every successful mutation.
// Observers run synchronously with the lock released.
func (r *Registry) OnChange(fn func(Event)) {
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

func (r *Registry) notify(ev Event) {
	r.mu.RLock()
	obs := make([]func(Event), len(r.observers))
	copy(obs, r.observers)
	r.mu.RUnlock()
	for _, fn := range obs {
		fn(ev)
	}
}

// cloneDevice returns a copy that shares no backing arrays with registry
// state, so later mutations cannot reach into a snapshot a caller holds.
func cloneDevice(d model.Device) model.Device {
	tabs := make([]model.Tab, len(d.Tabs))
	copy(tabs, d.Tabs)
	files := make([]model.FileRecord, len(d.UploadedFiles))
	copy(files, d.UploadedFiles)
	d.Tabs = tabs
	d.UploadedFiles = files
	return d
}

// List returns the current devices in insertion order.
func (r *Registry) List() []model.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Device, len(r.devices))
	for i, d := range r.devices {
		out[i] = cloneDevice(d)
	}
	return out
}

// Get returns the device with the given id.
func (r *Registry) Get(id int64) (model.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.devices {
		if d.ID == id {
			return cloneDevice(d), true
		}
	}
	return model.Device{}, false
}

// Add validates the draft, assigns a fresh id and appends the device.
// The id is max(existing ids)+1, or 1 for an empty registry.
func (r *Registry) Add(draft model.DeviceDraft) (model.Device, error) {
	if err := validateDraft(draft); err != nil {
		return model.Device{}, err
	}

	r.mu.Lock()
	var maxID int64
	for _, d := range r.devices {
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	status := draft.Status
	if status == "" {
		status = model.StatusOnline
	}
	method := draft.Method
	if method == "" {
		method = "GET"
	}

	device := model.Device{
		ID:            maxID + 1,
		Name:          draft.Name,
		Type:          draft.Type,
		Status:        status,
		ImportType:    draft.ImportType,
		APIURL:        draft.APIURL,
		Method:        method,
		Tabs:          append([]model.Tab(nil), draft.Tabs...),
		FolderName:    draft.FolderName,
		LastUpdated:   r.now().UTC(),
		UploadedFiles: []model.FileRecord{},
	}
	r.devices = append(r.devices, device)
	r.mu.Unlock()

	r.notify(Event{Op: OpAdd, DeviceID: device.ID})
	return device, nil
}

func validateDraft(draft model.DeviceDraft) error {
	if draft.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if draft.Type == "" {
		return &ValidationError{Field: "type", Reason: "is required"}
	}
	if draft.ImportType == "" {
		return &ValidationError{Field: "importType", Reason: "is required"}
	}
	if len(draft.Tabs) == 0 {
		return &ValidationError{Field: "tabs", Reason: "must select at least one view"}
	}
	return nil
}

// UpdateConfig merges the patch into the matching device and stamps
// LastUpdated. An unknown id is a silent no-op; the second return value
// reports whether anything matched.
func (r *Registry) UpdateConfig(id int64, patch model.ConfigPatch) (model.Device, bool) {
	r.mu.Lock()
	var updated model.Device
	found := false
	for i := range r.devices {
		if r.devices[i].ID != id {
			continue
		}
		if patch.APIURL != "" {
			r.devices[i].APIURL = patch.APIURL
		}
		if patch.Method != "" {
			r.devices[i].Method = patch.Method
		}
		r.stampLocked(i)
		updated = cloneDevice(r.devices[i])
		found = true
		break
	}
	r.mu.Unlock()

	if found {
		r.notify(Event{Op: OpUpdateConfig, DeviceID: id})
	}
	return updated, found
}

// Delete removes the device with the matching id. The destructive-action
// confirmation happens out of band; the registry performs none itself.
func (r *Registry) Delete(id int64) bool {
	r.mu.Lock()
	found := false
	kept := r.devices[:0]
	for _, d := range r.devices {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	r.devices = kept
	r.mu.Unlock()

	if found {
		r.notify(Event{Op: OpDelete, DeviceID: id})
	}
	return found
}

// AttachFile appends the record to the device's uploaded files.
func (r *Registry) AttachFile(id int64, file model.FileRecord) (model.Device, bool) {
	r.mu.Lock()
	var updated model.Device
	found := false
	for i := range r.devices {
		if r.devices[i].ID != id {
			continue
		}
		r.devices[i].UploadedFiles = append(r.devices[i].UploadedFiles, file)
		r.stampLocked(i)
		updated = cloneDevice(r.devices[i])
		found = true
		break
	}
	r.mu.Unlock()

	if found {
		r.notify(Event{Op: OpAttachFile, DeviceID: id})
	}
	return updated, found
}

// DetachFile removes the file at the given index. An unknown id or an
// out-of-range index is a silent no-op. The removed record is returned so
// callers can name it in a confirmation message.
func (r *Registry) DetachFile(id int64, fileIndex int) (model.Device, model.FileRecord, bool) {
	r.mu.Lock()
	var updated model.Device
	var removed model.FileRecord
	found := false
	for i := range r.devices {
		if r.devices[i].ID != id {
			continue
		}
		files := r.devices[i].UploadedFiles
		if fileIndex < 0 || fileIndex >= len(files) {
			break
		}
		removed = files[fileIndex]
		// Removal builds a fresh slice rather than shifting in place, so
		// earlier snapshots keep the array they were handed.
		kept := make([]model.FileRecord, 0, len(files)-1)
		kept = append(kept, files[:fileIndex]...)
		kept = append(kept, files[fileIndex+1:]...)
		r.devices[i].UploadedFiles = kept
		r.stampLocked(i)
		updated = cloneDevice(r.devices[i])
		found = true
		break
	}
	r.mu.Unlock()

	if found {
		r.notify(Event{Op: OpDetachFile, DeviceID: id})
	}
	return updated, removed, found
}

// stampLocked refreshes LastUpdated, keeping it strictly increasing even when
// two mutations land inside the clock's resolution.
func (r *Registry) stampLocked(i int) {
	now := r.now().UTC()
	if !now.After(r.devices[i].LastUpdated) {
		now = r.devices[i].LastUpdated.Add(time.Nanosecond)
	}
	r.devices[i].LastUpdated = now
}
