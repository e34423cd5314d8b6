package session

import (
	"context"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-ymaze/pkg/maze"
)

// Boxes whose centers fall in each zone of the test arena.
var (
	boxCenter = image.Rect(140, 140, 160, 160) // (150,150)
	boxArmA   = image.Rect(40, 40, 60, 60)     // (50,50)
	boxArmB   = image.Rect(240, 40, 260, 60)   // (250,50)
	boxArmC   = image.Rect(140, 290, 160, 310) // (150,300)
)

type recorder struct {
	info     []RunInfo
	frames   []FrameResult
	finished []Summary
}

func (r *recorder) Calibrated(info RunInfo)        { r.info = append(r.info, info) }
func (r *recorder) FrameProcessed(res FrameResult) { r.frames = append(r.frames, res) }
func (r *recorder) Finished(sum Summary)           { r.finished = append(r.finished, sum) }

func calibratedRun(box image.Rectangle) *RunContext {
	rc := NewRunContext(DefaultConfig(), "test.mp4", nil)
	rc.Apply(Calibration{Triangle: arena, Subject: box})
	return rc
}

// succeedUntil tracks box for the first n updates and fails afterwards.
func succeedUntil(n int, box image.Rectangle) func(int, Frame) (image.Rectangle, bool) {
	return func(i int, _ Frame) (image.Rectangle, bool) {
		if i <= n {
			return box, true
		}
		return image.Rect(0, 0, 1, 1), false
	}
}

func TestLoop_TenFramesEightTracked(t *testing.T) {
	rc := calibratedRun(boxArmA)
	src := NewMockSource(10, 640, 480)
	tr := NewMockTracker("KCF", boxArmA)
	tr.UpdateFunc = succeedUntil(8, boxArmA)
	rec := &recorder{}

	sum, err := NewLoop(rc, src, tr, nil, NewMockDisplay(nil), rec).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "center:0, a:8, b:0, c:0", sum.String())
	assert.Equal(t, 10, sum.Frames)
	assert.Equal(t, 8, sum.Tracked)
	assert.Equal(t, 2, sum.Failed)
	assert.Equal(t, "KCF", sum.Tracker)
	assert.Equal(t, rc.ID, sum.RunID)

	require.Len(t, rec.frames, 10)
	after8 := rec.frames[7].Tally
	assert.Equal(t, after8, rec.frames[8].Tally)
	assert.Equal(t, after8, rec.frames[9].Tally)
	for i, res := range rec.frames {
		assert.Equal(t, i+1, res.Index)
		assert.Equal(t, i < 8, res.Tracked, "frame %d", res.Index)
	}
}

func TestLoop_ClassifiesEachZone(t *testing.T) {
	boxes := []image.Rectangle{boxCenter, boxArmA, boxArmB, boxArmC, boxArmC}
	want := []maze.Zone{maze.ZoneCenter, maze.ZoneArmA, maze.ZoneArmB, maze.ZoneArmC, maze.ZoneArmC}

	rc := calibratedRun(boxCenter)
	tr := NewMockTracker("CSRT", boxCenter)
	tr.UpdateFunc = func(n int, _ Frame) (image.Rectangle, bool) { return boxes[n-1], true }
	rec := &recorder{}

	sum, err := NewLoop(rc, NewMockSource(len(boxes), 640, 480), tr, nil, NewMockDisplay(nil), rec).Run(context.Background())
	require.NoError(t, err)

	for i, res := range rec.frames {
		assert.Equal(t, want[i], res.Zone, "frame %d", res.Index)
	}
	assert.Equal(t, "center:1, a:1, b:1, c:2", sum.String())
}

func TestLoop_TallyMatchesSuccessfulUpdates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		n := 1 + rng.Intn(60)
		outcomes := make([]bool, n)
		successes := 0
		for i := range outcomes {
			outcomes[i] = rng.Intn(3) != 0
			if outcomes[i] {
				successes++
			}
		}

		boxes := []image.Rectangle{boxCenter, boxArmA, boxArmB, boxArmC}
		tr := NewMockTracker("MIL", boxCenter)
		tr.UpdateFunc = func(i int, _ Frame) (image.Rectangle, bool) {
			return boxes[rng.Intn(len(boxes))], outcomes[i-1]
		}

		sum, err := NewLoop(calibratedRun(boxCenter), NewMockSource(n, 640, 480), tr, nil, NewMockDisplay(nil)).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, successes, sum.Tally.Total(), "run %d", run)
		assert.Equal(t, n-successes, sum.Failed, "run %d", run)
	}
}

func TestLoop_FailureKeepsLastBox(t *testing.T) {
	rc := calibratedRun(boxArmA)
	tr := NewMockTracker("TLD", boxArmB)
	tr.UpdateFunc = succeedUntil(1, boxArmB)
	rec := &recorder{}

	_, err := NewLoop(rc, NewMockSource(3, 640, 480), tr, nil, NewMockDisplay(nil), rec).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, boxArmB, rec.frames[1].Box)
	assert.Equal(t, boxArmB, rec.frames[2].Box)
	assert.Equal(t, boxArmB, rc.Box)
	assert.Equal(t, "", rec.frames[2].Label())
}

func TestLoop_Overlay(t *testing.T) {
	tr := NewMockTracker("KCF", boxArmA)
	tr.UpdateFunc = succeedUntil(1, boxArmA)
	d := NewMockDisplay(nil)

	_, err := NewLoop(calibratedRun(boxArmA), NewMockSource(2, 640, 480), tr, nil, d).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Views, 2)

	ok := d.Views[0].Overlay
	require.Len(t, ok.Rects, 1)
	assert.Equal(t, boxArmA, ok.Rects[0].Box)
	assert.Equal(t, RoleSubject, ok.Rects[0].Role)
	require.Len(t, ok.Circles, 1)
	assert.Equal(t, image.Pt(50, 50), ok.Circles[0].Center)
	assert.Equal(t, []string{"KCF Tracker", "Frame:1, Arm:a"}, texts(ok))

	failed := d.Views[1].Overlay
	assert.Empty(t, failed.Rects)
	assert.Empty(t, failed.Circles)
	assert.Equal(t, []string{FailureNotice, "KCF Tracker", "Frame:2, Arm:"}, texts(failed))
}

func texts(o Overlay) []string {
	out := make([]string, len(o.Texts))
	for i, t := range o.Texts {
		out[i] = t.Text
	}
	return out
}

func TestLoop_BackgroundSubtraction(t *testing.T) {
	sub := &MockSubtractor{}
	d := NewMockDisplay(nil)
	rec := &recorder{}

	_, err := NewLoop(calibratedRun(boxArmA), NewMockSource(4, 320, 240), NewMockTracker("MOSSE", boxArmA), sub, d, rec).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, sub.Applied)
	assert.Equal(t, 4, d.Masks)
	for _, m := range sub.Masks {
		assert.True(t, m.Closed)
	}
	for _, res := range rec.frames {
		assert.NotNil(t, res.Mask)
	}
	assert.Equal(t, "center:0, a:4, b:0, c:0", rec.frames[3].Tally.String(), "mask must not affect the tally")
}

func TestLoop_QuitKeyStopsAtNextIteration(t *testing.T) {
	src := NewMockSource(10, 640, 480)
	tr := NewMockTracker("KCF", boxArmA)
	d := NewMockDisplay(nil, KeyNone, KeyNone, KeyEscape)

	l := NewLoop(calibratedRun(boxArmA), src, tr, nil, d)
	_, err := l.Run(context.Background())

	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 3, tr.Updates())
	assert.Equal(t, StateRunning, l.State())
}

func TestLoop_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewMockTracker("KCF", boxArmA)
	_, err := NewLoop(calibratedRun(boxArmA), NewMockSource(3, 640, 480), tr, nil, NewMockDisplay(nil)).Run(ctx)

	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 0, tr.Updates())
}

func TestLoop_ClosesFrames(t *testing.T) {
	src := NewMockSource(5, 640, 480)
	l := NewLoop(calibratedRun(boxArmA), src, NewMockTracker("KCF", boxArmA), nil, NewMockDisplay(nil))

	_, err := l.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, l.State())
	for i, f := range src.Frames {
		assert.True(t, f.Closed, "frame %d", i)
	}
}

func TestLoop_RequiresCalibration(t *testing.T) {
	rc := NewRunContext(DefaultConfig(), "test.mp4", nil)
	_, err := NewLoop(rc, NewMockSource(1, 1, 1), NewMockTracker("KCF", boxArmA), nil, NewMockDisplay(nil)).Run(context.Background())
	assert.ErrorIs(t, err, ErrNotCalibrated)
}

func TestLoop_EmptySourceExhaustsImmediately(t *testing.T) {
	sum, err := NewLoop(calibratedRun(boxArmA), NewMockSource(0, 1, 1), NewMockTracker("KCF", boxArmA), nil, NewMockDisplay(nil)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Frames)
	assert.Equal(t, "center:0, a:0, b:0, c:0", sum.String())
	assert.Zero(t, sum.FrameTime)
}
