package tracking

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"
)

func TestAlgorithms_SelectionOrder(t *testing.T) {
	want := []Algorithm{GOTURN, CSRT, KCF, DaSiamRPN, MIL, Boosting, TLD, MedianFlow, MOSSE}
	got := Algorithms()

	if len(got) < len(want) {
		t.Fatalf("Algorithms: got %d entries, want at least %d", len(got), len(want))
	}
	for i, a := range want {
		if got[i] != a {
			t.Errorf("Algorithms[%d]: got %s, want %s", i, got[i], a)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		expect Algorithm
	}{
		{"KCF", KCF},
		{"kcf", KCF},
		{" csrt ", CSRT},
		{"dasiamrpn", DaSiamRPN},
		{"MedianFlow", MedianFlow},
		{"boosting", Boosting},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if got != tc.expect {
				t.Errorf("Parse(%q): got %s, want %s", tc.in, got, tc.expect)
			}
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("SiamMask")
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("Parse: got %v, want ErrUnknownAlgorithm", err)
	}
	if !strings.Contains(err.Error(), "MOSSE") {
		t.Errorf("error should list choices: %v", err)
	}
}

func TestNew_Unavailable(t *testing.T) {
	for _, alg := range []Algorithm{DaSiamRPN, Boosting, TLD, MedianFlow, MOSSE} {
		if _, err := New(alg); !errors.Is(err, ErrUnavailable) {
			t.Errorf("New(%s): got %v, want ErrUnavailable", alg, err)
		}
	}
}

func TestNew_EveryAlgorithm(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			tr, err := New(alg)
			if err != nil {
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("New(%s): got %v, want success or ErrUnavailable", alg, err)
				}
				return
			}
			if tr.Name() != string(alg) {
				t.Errorf("Name: got %q, want %q", tr.Name(), alg)
			}
			if err := tr.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		})
	}
}

func TestNew_GOTURNWithoutModels(t *testing.T) {
	saved := GOTURNModels
	defer func() { GOTURNModels = saved }()
	GOTURNModels = []string{filepath.Join(t.TempDir(), "goturn.caffemodel")}

	_, err := New(GOTURN)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("New(GOTURN): got %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "goturn.caffemodel") {
		t.Errorf("error should name the missing model: %v", err)
	}
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "goturn.prototxt")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	absent := filepath.Join(dir, "goturn.caffemodel")

	got := missingFiles([]string{present, absent})
	if len(got) != 1 || got[0] != absent {
		t.Errorf("missingFiles: got %v, want [%s]", got, absent)
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New("NOPE"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("New: got %v, want ErrUnknownAlgorithm", err)
	}
}

func TestRegister_NewVariant(t *testing.T) {
	const custom Algorithm = "FAKE"
	cv := &fakeCV{initOK: true}
	Register(custom, func() (gocv.Tracker, error) { return cv, nil })

	alg, err := Parse("fake")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr, err := New(alg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Name() != "FAKE" {
		t.Errorf("Name: got %q", tr.Name())
	}
	if !strings.Contains(Names(), "FAKE") {
		t.Errorf("Names should include the new variant: %s", Names())
	}
}
