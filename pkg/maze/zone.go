package maze

// Zone is the maze region a subject occupies on a given frame.
type Zone int

const (
	// ZoneCenter is the junction, modelled as the calibration triangle.
	ZoneCenter Zone = iota
	// ZoneArmA is the arm above the centroid and not to its right.
	ZoneArmA
	// ZoneArmB is the arm above the centroid and to its right.
	ZoneArmB
	// ZoneArmC is the arm below the centroid.
	ZoneArmC
)

// Zones lists every zone in summary order.
var Zones = [...]Zone{ZoneCenter, ZoneArmA, ZoneArmB, ZoneArmC}

// String returns the short display label used in overlays and summaries.
func (z Zone) String() string {
	switch z {
	case ZoneCenter:
		return "center"
	case ZoneArmA:
		return "a"
	case ZoneArmB:
		return "b"
	case ZoneArmC:
		return "c"
	default:
		return "unknown"
	}
}

// Valid reports whether z is one of the four defined zones.
func (z Zone) Valid() bool {
	return z >= ZoneCenter && z <= ZoneArmC
}

// Classify assigns center to a zone.
//
// The triangle test runs first and is boundary inclusive. Outside the
// triangle, the vertical split against the centroid wins over the
// horizontal one: anything below the centroid is arm C, otherwise the
// subject is in arm B when right of the centroid and arm A when not.
func Classify(center Point, tri Triangle) Zone {
	if tri.Contains(center) {
		return ZoneCenter
	}

	c := tri.Centroid()
	switch {
	case center.Y > c.Y:
		return ZoneArmC
	case center.X > c.X:
		return ZoneArmB
	default:
		return ZoneArmA
	}
}
