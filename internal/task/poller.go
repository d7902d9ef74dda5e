package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ProgressResponse is the body of a GET /api/progress reply from either
// simulated-service flow.
type ProgressResponse struct {
	Progress        int            `json:"progress"`
	Status          string         `json:"status"`
	Complete        bool           `json:"complete"`
	Result          map[string]any `json:"result,omitempty"`
	ProcessedImage  string         `json:"processed_image,omitempty"`
	ProcessedImages []string       `json:"processed_images,omitempty"`
}

// StartAnalysisRequest is the body POSTed to the deep-analysis start
// endpoint.
type StartAnalysisRequest struct {
	DeviceID                string `json:"device_id"`
	AnalysisType            string `json:"analysis_type"`
	IncludeCharts           bool   `json:"include_charts"`
	IncludeTables           bool   `json:"include_tables"`
	GenerateMultipleOutputs bool   `json:"generate_multiple_outputs"`
}

// Poller starts a remote simulated operation and polls its progress endpoint
// on a fixed cadence. There is no retry, backoff or timeout beyond what the
// HTTP client itself applies; a failed start is terminal.
type Poller struct {
	Client   *http.Client
	Interval time.Duration
}

// NewPoller creates a poller with the given cadence (500ms for the drone
// flow, 800ms for deep analysis).
func NewPoller(interval time.Duration) *Poller {
	return &Poller{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Interval: interval,
	}
}

// Poll is the handle for one in-flight polled operation.
type Poll struct {
	*Task

	stop     chan struct{}
	stopOnce sync.Once
}

// Start POSTs to startURL (with an optional JSON body) and, if the request
// succeeds, begins polling progressURL. A failed start returns a
// NetworkError and no polling begins; the caller decides the status message.
func (p *Poller) Start(ctx context.Context, startURL, progressURL string, body any) (*Poll, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal start request: %w", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, startURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create start request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: startURL, Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{URL: startURL, Err: fmt.Errorf("received status code %d", resp.StatusCode)}
	}

	poll := &Poll{
		Task: newTask("Initializing..."),
		stop: make(chan struct{}),
	}
	go p.run(ctx, poll, progressURL)
	return poll, nil
}

func (p *Poller) run(ctx context.Context, poll *Poll, progressURL string) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.stop:
			return
		case <-ticker.C:
			pr, err := p.fetchProgress(ctx, progressURL)
			if err != nil {
				// A single failed poll is skipped; the next tick tries again.
				continue
			}
			if poll.apply(pr) {
				poll.closeDone()
				return
			}
		}
	}
}

func (p *Poller) fetchProgress(ctx context.Context, progressURL string) (*ProgressResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, progressURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: progressURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: progressURL, Err: fmt.Errorf("received status code %d", resp.StatusCode)}
	}

	var pr ProgressResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode progress response: %w", err)
	}
	return &pr, nil
}

// apply merges one progress response into the task state and reports whether
// the operation just completed. A response landing after cancellation is a
// no-op.
func (poll *Poll) apply(pr *ProgressResponse) bool {
	poll.mu.Lock()
	defer poll.mu.Unlock()
	if poll.cancelled || poll.complete {
		return false
	}
	poll.progress = pr.Progress
	poll.status = pr.Status
	if !pr.Complete {
		return false
	}
	poll.complete = true
	poll.result = pr.Result
	poll.processedImage = pr.ProcessedImage
	poll.processedImages = pr.ProcessedImages
	return true
}

// Cancel stops polling and resets all progress state to initial values. No
// partial result is retained.
func (poll *Poll) Cancel() {
	poll.markCancelled()
	poll.stopOnce.Do(func() { close(poll.stop) })
	poll.reset("Ready to start new analysis")
	poll.closeDone()
}
