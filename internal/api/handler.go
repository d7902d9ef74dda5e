package api

import (
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"rockfall-console-backend/internal/auth"
	"rockfall-console-backend/internal/dialog"
	"rockfall-console-backend/internal/kvstore"
	"rockfall-console-backend/internal/notification"
	"rockfall-console-backend/internal/registry"
	"rockfall-console-backend/internal/task"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	registry *registry.Registry
	dialogs  *dialog.Controller
	store    kvstore.Store
	session  *auth.Session
	verifier auth.Verifier
	pool     *notification.WorkerPool
	webpush  *webpush.Options

	uploader    *task.Uploader
	dronePoller *task.Poller
	deepPoller  *task.Poller
	droneURL    string
	analysisURL string

	// deleteDelay simulates server latency on confirmed deletes.
	deleteDelay time.Duration

	// retention is how long a finished task stays pollable before its
	// handle is dropped from the maps.
	retention time.Duration

	mu      sync.Mutex
	uploads map[string]*task.Upload
	polls   map[string]*task.Poll
}

// taskRetention keeps terminal snapshots available to late pollers without
// letting the bookkeeping maps grow for the life of the process.
const taskRetention = time.Minute

// Deps bundles the collaborators the API surfaces.
type Deps struct {
	Registry    *registry.Registry
	Dialogs     *dialog.Controller
	Store       kvstore.Store
	Session     *auth.Session
	Verifier    auth.Verifier
	Pool        *notification.WorkerPool
	Webpush     *webpush.Options
	Uploader    *task.Uploader
	DronePoller *task.Poller
	DeepPoller  *task.Poller
	DroneURL    string
	AnalysisURL string
	DeleteDelay time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		registry:    d.Registry,
		dialogs:     d.Dialogs,
		store:       d.Store,
		session:     d.Session,
		verifier:    d.Verifier,
		pool:        d.Pool,
		webpush:     d.Webpush,
		uploader:    d.Uploader,
		dronePoller: d.DronePoller,
		deepPoller:  d.DeepPoller,
		droneURL:    d.DroneURL,
		analysisURL: d.AnalysisURL,
		deleteDelay: d.DeleteDelay,
		retention:   taskRetention,
		uploads:     make(map[string]*task.Upload),
		polls:       make(map[string]*task.Poll),
	}
}

// evictUpload drops the upload's handle once it has been done for the
// retention window. Cancellation deletes eagerly; deleting twice is harmless.
func (h *Handler) evictUpload(up *task.Upload) {
	<-up.Done()
	time.Sleep(h.retention)
	h.mu.Lock()
	delete(h.uploads, up.ID())
	h.mu.Unlock()
}

// evictPoll is the polling-flow counterpart of evictUpload.
func (h *Handler) evictPoll(poll *task.Poll) {
	<-poll.Done()
	time.Sleep(h.retention)
	h.mu.Lock()
	delete(h.polls, poll.ID())
	h.mu.Unlock()
}
