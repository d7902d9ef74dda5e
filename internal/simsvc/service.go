// Package simsvc implements the local simulated-service surface the console
// polls for "drone processing" and "deep mining analysis" progress. The work
// is fake: a ticker walking through staged status strings until it reports
// complete with a canned result payload.
package simsvc

import (
	"sync"
	"time"

	"rockfall-console-backend/internal/task"
)

// stage pairs a progress threshold with the status text shown below it.
type stage struct {
	upTo   int
	status string
}

// Profile describes one simulated flow: its stages, terminal status and the
// result payload attached on completion.
type Profile struct {
	Stages      []stage
	FinalStatus string
	Finish      func(deviceID string) *task.ProgressResponse
}

// DroneProfile is the simple drone-processing flow on the first local port.
func DroneProfile() Profile {
	return Profile{
		Stages: []stage{
			{20, "Initializing drone camera..."},
			{45, "Capturing site imagery..."},
			{75, "Detecting rock faces..."},
			{100, "Rendering overlay..."},
		},
		FinalStatus: "Processing complete",
		Finish: func(string) *task.ProgressResponse {
			return &task.ProgressResponse{
				ProcessedImage: "Analysis/rockface_overlay.png",
			}
		},
	}
}

// AnalysisProfile is the deep-mining-analysis flow on the second local port.
func AnalysisProfile() Profile {
	return Profile{
		Stages: []stage{
			{15, "Initializing deep mining analysis..."},
			{35, "Segmenting slope regions..."},
			{60, "Scoring fracture density..."},
			{85, "Generating charts and tables..."},
			{100, "Compiling outputs..."},
		},
		FinalStatus: "Analysis complete",
		Finish: func(deviceID string) *task.ProgressResponse {
			return &task.ProgressResponse{
				Result: map[string]any{
					"device_id":  deviceID,
					"risk_level": "moderate",
					"confidence": 0.87,
					"zones": []map[string]any{
						{"name": "North Wall", "risk": "high", "probability": 0.71},
						{"name": "East Bench", "risk": "moderate", "probability": 0.44},
						{"name": "Haul Road Cut", "risk": "low", "probability": 0.12},
					},
				},
				ProcessedImages: []string{
					"Analysis/slope_segmentation.png",
					"Analysis/fracture_density.png",
					"Analysis/risk_heatmap.png",
				},
			}
		},
	}
}

// Service runs at most one simulation at a time. Starting a new one replaces
// the previous run, matching the single-slot progress endpoint it serves.
type Service struct {
	profile Profile
	step    time.Duration

	mu      sync.Mutex
	current *run
}

type run struct {
	mu       sync.Mutex
	deviceID string
	progress int
	status   string
	complete bool
	stopped  bool
	final    *task.ProgressResponse
}

// New creates a service for the given profile, advancing one step per tick.
func New(profile Profile, step time.Duration) *Service {
	return &Service{profile: profile, step: step}
}

// Begin starts a fresh simulation, stopping any run already in flight.
func (s *Service) Begin(deviceID string) {
	s.mu.Lock()
	if s.current != nil {
		s.current.stop()
	}
	r := &run{deviceID: deviceID, status: s.profile.Stages[0].status}
	s.current = r
	s.mu.Unlock()

	go s.drive(r)
}

func (s *Service) drive(r *run) {
	ticker := time.NewTicker(s.step)
	defer ticker.Stop()

	for range ticker.C {
		if !s.advance(r) {
			return
		}
	}
}

// advance moves the run forward one step and reports whether to keep going.
func (s *Service) advance(r *run) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.complete {
		return false
	}
	r.progress += 5
	if r.progress >= 100 {
		r.progress = 100
		r.complete = true
		r.status = s.profile.FinalStatus
		r.final = s.profile.Finish(r.deviceID)
		return false
	}
	for _, st := range s.profile.Stages {
		if r.progress < st.upTo {
			r.status = st.status
			break
		}
	}
	return true
}

func (r *run) stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
}

// Progress returns the current run's state in the wire shape the console
// polls for. With no run yet, it reports zero progress and not complete.
func (s *Service) Progress() task.ProgressResponse {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return task.ProgressResponse{Status: "Idle"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	resp := task.ProgressResponse{
		Progress: r.progress,
		Status:   r.status,
		Complete: r.complete,
	}
	if r.complete && r.final != nil {
		resp.Result = r.final.Result
		resp.ProcessedImage = r.final.ProcessedImage
		resp.ProcessedImages = r.final.ProcessedImages
	}
	return resp
}
