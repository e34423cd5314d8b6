package maze

import "fmt"

// Tally counts successfully tracked frames per zone.
// The zero value is ready to use. Counts only ever grow.
type Tally struct {
	counts [len(Zones)]int
}

// Add records one frame in z. Unknown zones are ignored.
func (t *Tally) Add(z Zone) {
	if !z.Valid() {
		return
	}
	t.counts[z]++
}

// Count returns the number of frames recorded for z.
func (t *Tally) Count(z Zone) int {
	if !z.Valid() {
		return 0
	}
	return t.counts[z]
}

// Total returns the number of frames recorded across all zones.
func (t *Tally) Total() int {
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}

// Counts returns a copy of the per-zone counts keyed by label.
func (t *Tally) Counts() map[string]int {
	m := make(map[string]int, len(Zones))
	for _, z := range Zones {
		m[z.String()] = t.counts[z]
	}
	return m
}

// String renders the end-of-run summary line.
func (t *Tally) String() string {
	return fmt.Sprintf("center:%d, a:%d, b:%d, c:%d",
		t.counts[ZoneCenter], t.counts[ZoneArmA], t.counts[ZoneArmB], t.counts[ZoneArmC])
}
