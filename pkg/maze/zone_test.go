package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		center Point
		expect Zone
	}{
		{"inside triangle", Pt(150, 150), ZoneCenter},
		{"on edge", Pt(150, 100), ZoneCenter},
		{"below centroid", Pt(150, 300), ZoneArmC},
		{"above and left", Pt(50, 50), ZoneArmA},
		{"above and right", Pt(250, 50), ZoneArmB},
		{"above, same x as centroid", Pt(150, 50), ZoneArmA},
		{"below and right, vertical wins", Pt(400, 400), ZoneArmC},
		{"level with centroid, right", Pt(300, 400.0/3), ZoneArmB},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Classify(tc.center, arena))
		})
	}
}

func TestClassify_OutsideFollowsCentroidSplit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := arena.Centroid()

	for i := 0; i < 5000; i++ {
		p := Pt(rng.Float64()*640, rng.Float64()*480)
		got := Classify(p, arena)

		if arena.Contains(p) {
			assert.Equal(t, ZoneCenter, got, "point %v", p)
			continue
		}

		var want Zone
		switch {
		case p.Y > c.Y:
			want = ZoneArmC
		case p.X > c.X:
			want = ZoneArmB
		default:
			want = ZoneArmA
		}
		assert.Equal(t, want, got, "point %v", p)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	p := Pt(173, 61)
	first := Classify(p, arena)
	for i := 0; i < 100; i++ {
		if got := Classify(p, arena); got != first {
			t.Fatalf("Classify changed between calls: %v then %v", first, got)
		}
	}
}

func TestZone_String(t *testing.T) {
	assert.Equal(t, "center", ZoneCenter.String())
	assert.Equal(t, "a", ZoneArmA.String())
	assert.Equal(t, "b", ZoneArmB.String())
	assert.Equal(t, "c", ZoneArmC.String())
	assert.Equal(t, "unknown", Zone(9).String())
	assert.False(t, Zone(-1).Valid())
}
