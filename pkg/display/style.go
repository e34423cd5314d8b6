// Package display renders session views in an OpenCV window and turns
// window input into session keys and mouse events.
package display

import (
	"image/color"

	"github.com/teslashibe/go-ymaze/pkg/session"
)

// Style is the paint used for one overlay role.
type Style struct {
	Color     color.RGBA
	Thickness int
}

// Colors are RGB; gocv swaps to BGR when drawing.
var (
	Red       = color.RGBA{R: 255, A: 255}
	Blue      = color.RGBA{B: 255, A: 255}
	Green     = color.RGBA{R: 50, G: 170, B: 50, A: 255}
	BoxBlue   = color.RGBA{R: 25, G: 25, B: 255, A: 255}
	CenterRed = color.RGBA{R: 255, G: 25, B: 25, A: 255}
	Yellow    = color.RGBA{R: 255, G: 220, A: 255}
)

// Text metrics shared by every caption.
const (
	FontScale     = 0.75
	TextThickness = 2
)

var styles = map[session.Role]Style{
	session.RoleInstruction: {Color: Red, Thickness: TextThickness},
	session.RoleStatus:      {Color: Green, Thickness: TextThickness},
	session.RoleMarker:      {Color: Red, Thickness: -1},
	session.RoleZone:        {Color: Blue, Thickness: -1},
	session.RoleSubject:     {Color: BoxBlue, Thickness: 2},
	session.RoleCenter:      {Color: CenterRed, Thickness: 1},
	session.RoleSelection:   {Color: Yellow, Thickness: 1},
}

// StyleFor returns the paint for role. Unknown roles draw as white
// one-pixel lines.
func StyleFor(role session.Role) Style {
	if s, ok := styles[role]; ok {
		return s
	}
	return Style{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}, Thickness: 1}
}

// circleThickness maps a Circle to an OpenCV thickness, -1 meaning filled.
func circleThickness(c session.Circle) int {
	if c.Filled {
		return -1
	}
	t := StyleFor(c.Role).Thickness
	if t < 1 {
		return 1
	}
	return t
}

// rectThickness never fills; boxes are always outlines.
func rectThickness(r session.Rect) int {
	t := StyleFor(r.Role).Thickness
	if t < 1 {
		return 1
	}
	return t
}
