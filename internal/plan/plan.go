package plan

// Step is one executed action in a finished plan.
type Step struct {
	// Kind of action: digest, ligate, goldengate, pcr
	Kind string `json:"kind"`

	// Inputs are the part names consumed
	Inputs []string `json:"inputs"`

	// Enzymes used, by name
	Enzymes []string `json:"enzymes,omitempty"`

	// Outputs are the part names produced
	Outputs []string `json:"outputs"`

	// Feasible is whether the step resolved cleanly
	Feasible bool `json:"feasible"`

	// Diagnostics carries any violations the step incurred
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Plan is an ordered list of steps from the initial constructs to the
// target, or a structured explanation of why none was found.
type Plan struct {
	// Target is the name of the construct being built
	Target string `json:"target"`

	// Steps from initial constructs to the final assembly
	Steps []Step `json:"steps"`

	// Score of the plan under the planner's weights; lower is better
	Score float64 `json:"score"`

	// Feasible is false when the search exhausted without a solution
	Feasible bool `json:"feasible"`

	// Reason is a machine-readable explanation when infeasible
	Reason string `json:"reason,omitempty"`

	// Product is the final assembled sequence, when feasible
	Product string `json:"product,omitempty"`
}
