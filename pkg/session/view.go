package session

import "image"

// Role tells the display how to style an overlay element.
type Role int

// Overlay roles.
const (
	RoleInstruction Role = iota // prompts and the tracking failure notice
	RoleStatus                  // tracker name and frame caption
	RoleMarker                  // calibration click markers
	RoleZone                    // filled center triangle
	RoleSubject                 // tracked bounding box
	RoleCenter                  // subject center marker
	RoleSelection               // box being dragged during subject selection
)

// Caption positions, in frame pixels.
var (
	TitlePos       = image.Pt(100, 20)
	CaptionPos     = image.Pt(100, 50)
	InstructionPos = image.Pt(100, 80)
)

// Text is a caption drawn at Pos (baseline origin).
type Text struct {
	Pos  image.Point
	Text string
	Role Role
}

// Circle is a marker; filled circles ignore line thickness.
type Circle struct {
	Center image.Point
	Radius int
	Filled bool
	Role   Role
}

// Rect is an outlined axis-aligned box.
type Rect struct {
	Box  image.Rectangle
	Role Role
}

// Polygon is a filled polygon.
type Polygon struct {
	Points []image.Point
	Role   Role
}

// Overlay lists everything to draw on top of a frame.
type Overlay struct {
	Polygons []Polygon
	Rects    []Rect
	Circles  []Circle
	Texts    []Text
}

// View is a frame plus its annotations. The display draws on its own copy;
// Frame is left untouched.
type View struct {
	Frame   Frame
	Overlay Overlay
}

func (o *Overlay) text(pos image.Point, s string, role Role) {
	o.Texts = append(o.Texts, Text{Pos: pos, Text: s, Role: role})
}
