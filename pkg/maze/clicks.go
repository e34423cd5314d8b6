package maze

// ClickBuffer keeps the last three calibration clicks. A fourth click
// evicts the oldest so the user can correct a misplaced point.
type ClickBuffer struct {
	pts [3]Point
	n   int
}

// Push appends p, dropping the oldest point once three are held.
func (b *ClickBuffer) Push(p Point) {
	if b.n < len(b.pts) {
		b.pts[b.n] = p
		b.n++
		return
	}
	b.pts[0], b.pts[1], b.pts[2] = b.pts[1], b.pts[2], p
}

// Len returns how many points are held (0-3).
func (b *ClickBuffer) Len() int {
	return b.n
}

// Points returns the held points, oldest first.
func (b *ClickBuffer) Points() []Point {
	out := make([]Point, b.n)
	copy(out, b.pts[:b.n])
	return out
}

// Triangle returns the held points as a triangle once three clicks exist.
func (b *ClickBuffer) Triangle() (Triangle, bool) {
	if b.n < len(b.pts) {
		return Triangle{}, false
	}
	return Triangle(b.pts), true
}

// Reset discards all points.
func (b *ClickBuffer) Reset() {
	*b = ClickBuffer{}
}
