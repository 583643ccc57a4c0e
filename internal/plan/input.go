package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cloneplan/internal/seq"
)

// ConstructSpec is one named input sequence in a cloning spec file.
type ConstructSpec struct {
	Name     string    `yaml:"name"`
	Seq      string    `yaml:"seq"`
	Topology string    `yaml:"topology"`
	Features []Feature `yaml:"features"`
}

// JunctionSpec is a requirement on one junction of the target assembly.
type JunctionSpec struct {
	// Left and Right are the target-part names either side of the join
	Left  string `yaml:"left"`
	Right string `yaml:"right"`

	// Directional requires the junction to fix orientation
	Directional bool `yaml:"directional"`

	// MaxScar caps the junction's scar length; <0 means unbounded
	MaxScar int `yaml:"max_scar"`

	// KeepFrame requires the junction to preserve downstream CDS frames
	KeepFrame bool `yaml:"keep_frame"`
}

// Constraints bound and bias the search.
type Constraints struct {
	AvoidInternalCuts       bool     `yaml:"avoid_internal_cuts"`
	DephosphorylateBackbone bool     `yaml:"dephosphorylate_backbone"`
	MinOverhang             int      `yaml:"min_overhang"`
	RequireDirectional      bool     `yaml:"require_directional"`
	KeepFrame               bool     `yaml:"keep_frame"`
	EnzymeAllow             []string `yaml:"enzyme_allow"`
	EnzymeDeny              []string `yaml:"enzyme_deny"`
	PreferTypeIIS           bool     `yaml:"prefer_typeiis"`

	// MaxSteps and BeamWidth override the configured search bounds when
	// present; nil falls back to settings
	MaxSteps  *int `yaml:"max_steps"`
	BeamWidth *int `yaml:"beam_width"`
}

// Spec is a whole cloning specification document.
type Spec struct {
	// Vector is the backbone construct
	Vector ConstructSpec `yaml:"vector"`

	// Inserts are the parts going into the backbone
	Inserts []ConstructSpec `yaml:"inserts"`

	// Target names the assembly and the required part order
	Target struct {
		Name      string         `yaml:"name"`
		Order     []string       `yaml:"order"`
		Topology  string         `yaml:"topology"`
		Junctions []JunctionSpec `yaml:"junctions"`
	} `yaml:"target"`

	Constraints Constraints `yaml:"constraints"`
}

// ReadSpec parses a YAML cloning spec from a file.
func ReadSpec(path string) (Spec, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, err
	}

	var spec Spec
	if err := yaml.Unmarshal(contents, &spec); err != nil {
		return Spec{}, fmt.Errorf("failed to parse cloning spec %s: %w", path, err)
	}

	if spec.Vector.Name == "" {
		return Spec{}, fmt.Errorf("cloning spec %s has no vector", path)
	}
	if len(spec.Target.Order) == 0 {
		// default: vector then inserts, in file order
		spec.Target.Order = append(spec.Target.Order, spec.Vector.Name)
		for _, ins := range spec.Inserts {
			spec.Target.Order = append(spec.Target.Order, ins.Name)
		}
	}
	return spec, nil
}

// Constructs validates and converts the spec's sequences.
func (s Spec) Constructs() ([]Construct, error) {
	specs := append([]ConstructSpec{s.Vector}, s.Inserts...)

	constructs := make([]Construct, 0, len(specs))
	for _, cs := range specs {
		topology := seq.Linear
		if cs.Topology == "circular" {
			topology = seq.Circular
		}

		c, err := NewConstruct(cs.Name, cs.Seq, topology, cs.Features)
		if err != nil {
			return nil, err
		}
		constructs = append(constructs, c)
	}
	return constructs, nil
}
