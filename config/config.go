// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Weights are the additive scoring terms of the planner. Lower plan
// scores are better; negative weights are rewards.
type Weights struct {
	// Step is added once per step taken
	Step float64 `mapstructure:"step"`

	// Enzyme is added per distinct enzyme the plan uses
	Enzyme float64 `mapstructure:"enzyme"`

	// BufferSwitch is added per estimated reaction-buffer change
	BufferSwitch float64 `mapstructure:"buffer-switch"`

	// NonDirectional is added per orientation-ambiguous junction in the
	// final assembly
	NonDirectional float64 `mapstructure:"non-directional"`

	// InternalCut is added per cut landing inside a protected feature
	InternalCut float64 `mapstructure:"internal-cut"`

	// Scar is added per base of scar sequence at junctions
	Scar float64 `mapstructure:"scar"`

	// GoldenGate is added once if any Golden Gate step is used
	GoldenGate float64 `mapstructure:"golden-gate"`

	// EnzymeReuse is added per enzyme shared by two or more steps
	EnzymeReuse float64 `mapstructure:"enzyme-reuse"`
}

// Search bounds the planner.
type Search struct {
	// MaxSteps is the maximum number of cloning steps in a plan
	MaxSteps int `mapstructure:"max-steps"`

	// BeamWidth is the number of best partial plans kept per round
	BeamWidth int `mapstructure:"beam-width"`

	// MaxCutsPerEnzyme is how many times an enzyme may cut a construct
	// before it's dropped as a digestion candidate
	MaxCutsPerEnzyme int `mapstructure:"max-cuts-per-enzyme"`
}

// Config is the root-level settings struct: defaults overridable from a
// settings file or command line flags.
type Config struct {
	// EnzymeDB is an optional TSV of extra enzymes to merge in
	EnzymeDB string `mapstructure:"enzyme-db"`

	// Weights for plan scoring
	Weights Weights `mapstructure:"weights"`

	// Search bounds
	Search Search `mapstructure:"search"`
}

// setDefaults registers every setting's default value with viper.
func setDefaults() {
	viper.SetDefault("weights.step", 1.0)
	viper.SetDefault("weights.enzyme", 0.5)
	viper.SetDefault("weights.buffer-switch", 0.3)
	viper.SetDefault("weights.non-directional", 1.0)
	viper.SetDefault("weights.internal-cut", 2.0)
	viper.SetDefault("weights.scar", 0.1)
	viper.SetDefault("weights.golden-gate", -0.4)
	viper.SetDefault("weights.enzyme-reuse", -0.3)

	viper.SetDefault("search.max-steps", 6)
	viper.SetDefault("search.beam-width", 25)
	viper.SetDefault("search.max-cuts-per-enzyme", 2)
}

// New returns a Config populated by Viper settings: the defaults above,
// a settings file if one was read in /cmd, and any bound flags.
func New() *Config {
	setDefaults()

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}
	return c
}
