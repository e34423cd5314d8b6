// Package tracking adapts OpenCV single-object trackers to the
// session.Tracker contract. The algorithm is picked by name before
// calibration and stays fixed for the run.
package tracking

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Algorithm names a tracking algorithm as shown to the user.
type Algorithm string

// Built-in algorithms, in selection-surface order.
const (
	GOTURN     Algorithm = "GOTURN"
	CSRT       Algorithm = "CSRT"
	KCF        Algorithm = "KCF"
	DaSiamRPN  Algorithm = "DaSiamRPN"
	MIL        Algorithm = "MIL"
	Boosting   Algorithm = "BOOSTING"
	TLD        Algorithm = "TLD"
	MedianFlow Algorithm = "MEDIANFLOW"
	MOSSE      Algorithm = "MOSSE"
)

// Factory constructs a fresh OpenCV tracker.
type Factory func() (gocv.Tracker, error)

var (
	registryMu sync.RWMutex
	order      []Algorithm
	factories  = map[Algorithm]Factory{}
)

// GOTURNModels are the network files OpenCV loads, relative to the working
// directory, when a GOTURN tracker is created.
var GOTURNModels = []string{"goturn.prototxt", "goturn.caffemodel"}

const legacy = "is a legacy tracker not wrapped by gocv"

func init() {
	Register(GOTURN, newGOTURN)
	Register(CSRT, func() (gocv.Tracker, error) { return contrib.NewTrackerCSRT(), nil })
	Register(KCF, func() (gocv.Tracker, error) { return contrib.NewTrackerKCF(), nil })
	Register(DaSiamRPN, unavailable(DaSiamRPN, "needs the DaSiamRPN ONNX networks, which gocv does not wrap"))
	Register(MIL, func() (gocv.Tracker, error) { return gocv.NewTrackerMIL(), nil })
	Register(Boosting, unavailable(Boosting, legacy))
	Register(TLD, unavailable(TLD, legacy))
	Register(MedianFlow, unavailable(MedianFlow, legacy))
	Register(MOSSE, unavailable(MOSSE, legacy))
}

// newGOTURN checks for the model files first: OpenCV reads the network
// while constructing the tracker and aborts the process if it is missing.
func newGOTURN() (gocv.Tracker, error) {
	if missing := missingFiles(GOTURNModels); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s needs %s in the working directory",
			ErrUnavailable, GOTURN, strings.Join(missing, ", "))
	}
	return gocv.NewTrackerGOTURN(), nil
}

func missingFiles(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// Register adds or replaces the factory for alg. New names are appended
// to the selection order.
func Register(alg Algorithm, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := factories[alg]; !ok {
		order = append(order, alg)
	}
	factories[alg] = f
}

// Algorithms returns every registered algorithm in selection order.
func Algorithms() []Algorithm {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Algorithm, len(order))
	copy(out, order)
	return out
}

// Names returns the registered algorithm names joined for help text.
func Names() string {
	return joined(Algorithms())
}

// Parse resolves a user-supplied name, ignoring case.
func Parse(name string) (Algorithm, error) {
	name = strings.TrimSpace(name)

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, a := range order {
		if strings.EqualFold(string(a), name) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose one of %s)", ErrUnknownAlgorithm, name, joined(order))
}

func joined(algs []Algorithm) string {
	s := make([]string, len(algs))
	for i, a := range algs {
		s[i] = string(a)
	}
	return strings.Join(s, ", ")
}

func factory(alg Algorithm) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[alg]
	return f, ok
}

func unavailable(alg Algorithm, reason string) Factory {
	return func() (gocv.Tracker, error) {
		return nil, fmt.Errorf("%w: %s %s", ErrUnavailable, alg, reason)
	}
}
