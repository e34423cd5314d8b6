package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickBuffer_NeedsThreePoints(t *testing.T) {
	var b ClickBuffer
	b.Push(Pt(1, 1))
	b.Push(Pt(2, 2))

	_, ok := b.Triangle()
	assert.False(t, ok)
	assert.Equal(t, 2, b.Len())
}

func TestClickBuffer_KeepsLastThree(t *testing.T) {
	for n := 3; n <= 10; n++ {
		var b ClickBuffer
		clicks := make([]Point, n)
		for i := range clicks {
			clicks[i] = Pt(float64(i*10), float64(i*7))
			b.Push(clicks[i])
		}

		tri, ok := b.Triangle()
		require.True(t, ok, "n=%d", n)
		assert.Equal(t, Triangle{clicks[n-3], clicks[n-2], clicks[n-1]}, tri, "n=%d", n)
		assert.Equal(t, 3, b.Len())
	}
}

func TestClickBuffer_PointsIsCopy(t *testing.T) {
	var b ClickBuffer
	b.Push(Pt(5, 5))
	pts := b.Points()
	pts[0] = Pt(0, 0)
	assert.Equal(t, Pt(5, 5), b.Points()[0])
}

func TestClickBuffer_Reset(t *testing.T) {
	var b ClickBuffer
	b.Push(Pt(5, 5))
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Points())
}
