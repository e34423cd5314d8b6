package web

import (
	"sync"
	"time"

	"github.com/teslashibe/go-ymaze/pkg/maze"
	"github.com/teslashibe/go-ymaze/pkg/session"
)

// Phase is where the run currently is.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseTracking Phase = "tracking"
	PhaseFinished Phase = "finished"
)

// RunStatus is the dashboard's view of the run.
type RunStatus struct {
	Phase      Phase          `json:"phase"`
	RunID      string         `json:"run_id,omitempty"`
	Video      string         `json:"video,omitempty"`
	Tracker    string         `json:"tracker,omitempty"`
	BackSub    bool           `json:"backsub"`
	Triangle   [][2]float64   `json:"triangle,omitempty"`
	Frame      int            `json:"frame"`
	Tracked    bool           `json:"tracked"`
	Zone       string         `json:"zone,omitempty"`
	Box        [4]int         `json:"box"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	Foreground float64        `json:"foreground,omitempty"`
	StartedAt  time.Time      `json:"started_at,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// FrameEntry is one processed frame in the recent history.
type FrameEntry struct {
	Frame     int     `json:"frame"`
	Tracked   bool    `json:"tracked"`
	Zone      string  `json:"zone,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// RunSummary is the final result as served over HTTP.
type RunSummary struct {
	RunID       string         `json:"run_id"`
	Tracker     string         `json:"tracker"`
	Frames      int            `json:"frames"`
	Tracked     int            `json:"tracked"`
	Failed      int            `json:"failed"`
	Counts      map[string]int `json:"counts"`
	Result      string         `json:"result"`
	MeanFrameMS float64        `json:"mean_frame_ms"`
	StdFrameMS  float64        `json:"std_frame_ms"`
	MaxFrameMS  float64        `json:"max_frame_ms"`
}

// Event is the envelope pushed on /ws/status.
type Event struct {
	Type string      `json:"type"` // status, summary
	Data interface{} `json:"data"`
}

// state accumulates observer callbacks. It never blocks the caller for
// longer than a mutex hold.
type state struct {
	mu      sync.RWMutex
	status  RunStatus
	summary *RunSummary
	recent  []FrameEntry
	limit   int

	// maskRatio measures a foreground mask while it is still valid.
	maskRatio func(session.Frame) float64
}

func newState(limit int, maskRatio func(session.Frame) float64) *state {
	return &state{
		status: RunStatus{Phase: PhaseWaiting, Counts: zeroCounts(), UpdatedAt: time.Now()},
		limit:  limit,
		recent: make([]FrameEntry, 0, limit),

		maskRatio: maskRatio,
	}
}

func zeroCounts() map[string]int {
	var t maze.Tally
	return t.Counts()
}

func (s *state) calibrated(info session.RunInfo) RunStatus {
	tri := make([][2]float64, 0, len(info.Triangle))
	for _, p := range info.Triangle {
		tri = append(tri, [2]float64{p.X, p.Y})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = RunStatus{
		Phase:     PhaseTracking,
		RunID:     info.ID,
		Video:     info.Path,
		Tracker:   info.Algorithm,
		BackSub:   info.BackSub,
		Triangle:  tri,
		Box:       rect(info.Subject.Min.X, info.Subject.Min.Y, info.Subject.Max.X, info.Subject.Max.Y),
		Counts:    zeroCounts(),
		StartedAt: info.StartedAt,
		UpdatedAt: time.Now(),
	}
	s.summary = nil
	s.recent = s.recent[:0]
	return s.copyStatus()
}

func (s *state) frameProcessed(res session.FrameResult) RunStatus {
	var fg float64
	if res.Mask != nil && s.maskRatio != nil {
		fg = s.maskRatio(res.Mask)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.status
	st.Phase = PhaseTracking
	st.Frame = res.Index
	st.Tracked = res.Tracked
	st.Zone = res.Label()
	st.Box = rect(res.Box.Min.X, res.Box.Min.Y, res.Box.Max.X, res.Box.Max.Y)
	st.Counts = res.Tally.Counts()
	st.Total = res.Tally.Total()
	st.Foreground = fg
	st.UpdatedAt = time.Now()

	if s.limit > 0 {
		if len(s.recent) == s.limit {
			copy(s.recent, s.recent[1:])
			s.recent = s.recent[:s.limit-1]
		}
		s.recent = append(s.recent, FrameEntry{
			Frame:     res.Index,
			Tracked:   res.Tracked,
			Zone:      res.Label(),
			X:         res.Center.X,
			Y:         res.Center.Y,
			ElapsedMS: float64(res.Elapsed) / float64(time.Millisecond),
		})
	}
	return s.copyStatus()
}

func (s *state) finished(sum session.Summary) RunSummary {
	out := RunSummary{
		RunID:       sum.RunID,
		Tracker:     sum.Tracker,
		Frames:      sum.Frames,
		Tracked:     sum.Tracked,
		Failed:      sum.Failed,
		Counts:      sum.Tally.Counts(),
		Result:      sum.String(),
		MeanFrameMS: sum.FrameTime.Mean,
		StdFrameMS:  sum.FrameTime.StdDev,
		MaxFrameMS:  sum.FrameTime.Max,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &out
	s.status.Phase = PhaseFinished
	s.status.UpdatedAt = time.Now()
	return out
}

func (s *state) snapshot() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyStatus()
}

func (s *state) result() (RunSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return RunSummary{}, false
	}
	return *s.summary, true
}

func (s *state) frames() []FrameEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FrameEntry, len(s.recent))
	copy(out, s.recent)
	return out
}

// copyStatus must be called with mu held.
func (s *state) copyStatus() RunStatus {
	st := s.status
	st.Counts = make(map[string]int, len(s.status.Counts))
	for k, v := range s.status.Counts {
		st.Counts[k] = v
	}
	return st
}

func rect(x0, y0, x1, y1 int) [4]int {
	return [4]int{x0, y0, x1, y1}
}
