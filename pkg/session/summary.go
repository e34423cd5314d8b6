package session

import (
	"gonum.org/v1/gonum/stat"

	"github.com/teslashibe/go-ymaze/pkg/maze"
)

// Summary is emitted once when a run reaches the end of the video.
type Summary struct {
	RunID     string
	Tracker   string
	Frames    int
	Tracked   int
	Failed    int
	Tally     maze.Tally
	FrameTime Timing
}

// String returns the user-facing summary line.
func (s Summary) String() string {
	return s.Tally.String()
}

// Timing summarizes per-frame processing time in milliseconds.
type Timing struct {
	Mean   float64
	StdDev float64
	Max    float64
}

func newTiming(ms []float64) Timing {
	if len(ms) == 0 {
		return Timing{}
	}
	var t Timing
	if len(ms) == 1 {
		t.Mean = ms[0]
	} else {
		t.Mean, t.StdDev = stat.MeanStdDev(ms, nil)
	}
	for _, v := range ms {
		if v > t.Max {
			t.Max = v
		}
	}
	return t
}
