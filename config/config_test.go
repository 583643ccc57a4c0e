package config

import (
	"testing"
)

func Test_New(t *testing.T) {
	c := New()

	if c.Weights.Step != 1.0 {
		t.Errorf("Weights.Step = %f, want 1.0", c.Weights.Step)
	}
	if c.Weights.Enzyme != 0.5 {
		t.Errorf("Weights.Enzyme = %f, want 0.5", c.Weights.Enzyme)
	}
	if c.Weights.GoldenGate >= 0 {
		t.Errorf("Weights.GoldenGate = %f, want a reward (negative)", c.Weights.GoldenGate)
	}
	if c.Weights.EnzymeReuse >= 0 {
		t.Errorf("Weights.EnzymeReuse = %f, want a reward (negative)", c.Weights.EnzymeReuse)
	}

	if c.Search.MaxSteps != 6 {
		t.Errorf("Search.MaxSteps = %d, want 6", c.Search.MaxSteps)
	}
	if c.Search.BeamWidth != 25 {
		t.Errorf("Search.BeamWidth = %d, want 25", c.Search.BeamWidth)
	}
	if c.Search.MaxCutsPerEnzyme != 2 {
		t.Errorf("Search.MaxCutsPerEnzyme = %d, want 2", c.Search.MaxCutsPerEnzyme)
	}

	if c.EnzymeDB != "" {
		t.Errorf("EnzymeDB = %q, want empty by default", c.EnzymeDB)
	}
}
