package plan

import (
	"fmt"
	"sort"
	"strings"

	"cloneplan/config"
	"cloneplan/internal/digest"
	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// Planner runs a beam search over cloning actions to build a target
// assembly out of a vector and inserts.
type Planner struct {
	db   *enzyme.DB
	conf *config.Config
}

// New returns a Planner. The enzyme DB is passed in explicitly; nothing
// here reads global state.
func New(db *enzyme.DB, conf *config.Config) *Planner {
	return &Planner{db: db, conf: conf}
}

// state is one node of the search: the current pool of parts plus the
// steps that produced it. Deduplicated by content signature.
type state struct {
	parts []part
	steps []Step

	// scoring accumulators
	enzymeSteps  map[string]int
	buffers      int
	lastBuffer   string
	internalCuts int
	goldenGate   bool
	junctions    []junction

	score float64
}

// Plan searches for a cloning strategy satisfying the spec. A well-formed
// but unsatisfiable spec produces an infeasible Plan, not an error; errors
// are reserved for invalid inputs.
func (pl *Planner) Plan(spec Spec) (Plan, error) {
	constructs, err := spec.Constructs()
	if err != nil {
		return Plan{}, err
	}

	target := spec.Target.Name
	if target == "" {
		target = "assembly"
	}

	maxSteps := pl.conf.Search.MaxSteps
	if spec.Constraints.MaxSteps != nil {
		maxSteps = *spec.Constraints.MaxSteps
	}
	beamWidth := pl.conf.Search.BeamWidth
	if spec.Constraints.BeamWidth != nil {
		beamWidth = *spec.Constraints.BeamWidth
	}
	if maxSteps <= 0 {
		return Plan{Target: target, Feasible: false, Reason: "max_steps is zero: no actions may be taken"}, nil
	}
	if beamWidth <= 0 {
		beamWidth = 1
	}

	enzymes, err := pl.allowedEnzymes(spec.Constraints)
	if err != nil {
		return Plan{}, err
	}
	if len(enzymes) == 0 {
		return Plan{Target: target, Feasible: false, Reason: "no usable enzymes after applying allow/deny lists"}, nil
	}

	initial := state{enzymeSteps: map[string]int{}}
	for _, c := range constructs {
		initial.parts = append(initial.parts, newPart(c))
	}
	sortParts(initial.parts)

	beam := []state{initial}
	for round := 0; round < maxSteps; round++ {
		var successors []state
		for _, st := range beam {
			successors = append(successors, pl.expand(st, spec, enzymes)...)
		}
		if len(successors) == 0 {
			return Plan{
				Target:   target,
				Feasible: false,
				Reason:   fmt.Sprintf("no legal actions remain after %d steps", round),
			}, nil
		}

		// terminal states end the search at the shallowest round, best
		// score first, ties broken by generation order
		best := -1
		for i, st := range successors {
			if pl.terminalPart(st, spec) < 0 {
				continue
			}
			if best < 0 || st.score < successors[best].score {
				best = i
			}
		}
		if best >= 0 {
			return pl.finishPlan(successors[best], spec, target), nil
		}

		beam = prune(successors, beamWidth)
	}

	return Plan{
		Target:   target,
		Feasible: false,
		Reason:   fmt.Sprintf("search exhausted %d steps without assembling the target", maxSteps),
	}, nil
}

// allowedEnzymes resolves the DB against the spec's allow/deny lists,
// sorted by name for deterministic enumeration.
func (pl *Planner) allowedEnzymes(c Constraints) ([]enzyme.Enzyme, error) {
	names := pl.db.Names()
	if len(c.EnzymeAllow) > 0 {
		names = nil
		for _, n := range c.EnzymeAllow {
			names = append(names, strings.TrimSpace(n))
		}
		sort.Strings(names)
	}

	denied := map[string]bool{}
	for _, n := range c.EnzymeDeny {
		denied[strings.TrimSpace(n)] = true
	}

	var enzymes []enzyme.Enzyme
	for _, name := range names {
		if denied[name] {
			continue
		}
		enz, err := pl.db.Get(name)
		if err != nil {
			return nil, err
		}
		if !enz.Cuts() {
			continue
		}
		enzymes = append(enzymes, enz)
	}
	return enzymes, nil
}

// expand generates every legal successor of a state, in deterministic
// order: digests, then ligations, then Golden Gate pots.
func (pl *Planner) expand(st state, spec Spec, enzymes []enzyme.Enzyme) []state {
	var successors []state

	emit := func(act Action, res result, err error) {
		if err != nil {
			// an inapplicable action prunes the branch, never the search
			return
		}
		if spec.Constraints.AvoidInternalCuts && res.diags.InternalCutViolation {
			return
		}
		if spec.Constraints.RequireDirectional && res.diags.DirectionalityViolation {
			return
		}
		if spec.Constraints.KeepFrame && res.diags.FrameViolation {
			return
		}
		if !junctionsAllowed(res.junctions, spec.Target.Junctions) {
			return
		}
		successors = append(successors, pl.successor(st, act, res, spec.Constraints))
	}

	// digests: each part x each usable enzyme, then enzyme pairs
	for _, p := range st.parts {
		cutters := pl.cutters(p, enzymes)

		dephos := spec.Constraints.DephosphorylateBackbone && contains(p.parts, spec.Vector.Name)
		for _, e := range cutters {
			res, err := applyDigest(p, []enzyme.Enzyme{e}, dephos)
			emit(Action{Kind: KindDigest, Inputs: []string{p.name}, Enzymes: []string{e.Name}, Dephosphorylate: dephos}, res, err)
		}
		for i := 0; i < len(cutters); i++ {
			for j := i + 1; j < len(cutters); j++ {
				pair := []enzyme.Enzyme{cutters[i], cutters[j]}
				res, err := applyDigest(p, pair, dephos)
				emit(Action{Kind: KindDigest, Inputs: []string{p.name}, Enzymes: []string{cutters[i].Name, cutters[j].Name}, Dephosphorylate: dephos}, res, err)
			}
		}
	}

	// joint digests: every payload-bearing part in one reaction, sharing
	// one buffer. The classic double-digest of vector and insert together.
	if pool := payloadParts(st.parts); len(pool) >= 2 {
		dephosFor := func(p part) bool {
			return spec.Constraints.DephosphorylateBackbone && contains(p.parts, spec.Vector.Name)
		}
		for _, set := range pl.jointEnzymeSets(pool, enzymes) {
			res, err := applyDigestAll(pool, set, dephosFor)
			act := Action{Kind: KindDigest, Inputs: partNames(pool), Enzymes: enzymeNames(set)}
			for _, p := range pool {
				if dephosFor(p) {
					act.Dephosphorylate = true
				}
			}
			emit(act, res, err)
		}
	}

	// ligations between payload-bearing linear parts, plus circularization
	for _, a := range st.parts {
		if a.circular || len(a.parts) == 0 {
			continue
		}
		for _, b := range st.parts {
			if b.circular || len(b.parts) == 0 || a.name == b.name {
				continue
			}
			res, err := applyLigate(a, b, spec.Constraints.MinOverhang, spec.Constraints.KeepFrame)
			emit(Action{Kind: KindLigate, Inputs: []string{a.name, b.name}}, res, err)

			// in the same ligation mix a joined product whose own ends
			// match closes on itself; emit that outcome as the same step
			if err == nil {
				joined := res.outputs[0]
				circ, cerr := applyLigate(joined, joined, spec.Constraints.MinOverhang, spec.Constraints.KeepFrame)
				if cerr == nil {
					merged := result{
						outputs:   circ.outputs,
						consumed:  []string{a.name, b.name},
						diags:     mergeDiags(res.diags, circ.diags),
						junctions: append(append([]junction(nil), res.junctions...), circ.junctions...),
					}
					emit(Action{Kind: KindLigate, Inputs: []string{a.name, b.name}}, merged, nil)
				}
			}
		}

		res, err := applyLigate(a, a, spec.Constraints.MinOverhang, spec.Constraints.KeepFrame)
		emit(Action{Kind: KindLigate, Inputs: []string{a.name}}, res, err)
	}

	// golden gate: one pot over all target parts, one Type IIS enzyme
	if pot, ok := potParts(st.parts, spec.Target.Order); ok {
		for _, e := range enzymes {
			if !e.TypeIIS {
				continue
			}
			res, err := applyGoldenGate(pot, e, spec.Constraints.MinOverhang)
			emit(Action{Kind: KindGoldenGate, Inputs: partNames(pot), Enzymes: []string{e.Name}}, res, err)
		}
	}

	return successors
}

// cutters returns the enzymes worth digesting a part with: those that cut
// it at least once and no more than the configured maximum.
func (pl *Planner) cutters(p part, enzymes []enzyme.Enzyme) []enzyme.Enzyme {
	s, err := seq.New(p.name, p.bases, p.topology())
	if err != nil {
		return nil
	}

	maxCuts := pl.conf.Search.MaxCutsPerEnzyme
	if maxCuts <= 0 {
		maxCuts = 2
	}

	var usable []enzyme.Enzyme
	for _, e := range enzymes {
		sites, err := digest.CutSites(s, []enzyme.Enzyme{e})
		if err != nil || len(sites) == 0 || len(sites) > maxCuts {
			continue
		}
		usable = append(usable, e)
	}
	return usable
}

// payloadParts returns the parts still carrying target-part identity.
func payloadParts(parts []part) []part {
	var pool []part
	for _, p := range parts {
		if len(p.parts) > 0 {
			pool = append(pool, p)
		}
	}
	return pool
}

// jointEnzymeSets enumerates enzyme singles and pairs that cut every part
// in the pool at least once, without shredding any of them.
func (pl *Planner) jointEnzymeSets(pool []part, enzymes []enzyme.Enzyme) [][]enzyme.Enzyme {
	maxCuts := pl.conf.Search.MaxCutsPerEnzyme
	if maxCuts <= 0 {
		maxCuts = 2
	}

	// cuts[enzyme name][part index]
	cuts := map[string][]int{}
	candidates := make([]enzyme.Enzyme, 0, len(enzymes))
	for _, e := range enzymes {
		counts := make([]int, len(pool))
		usable, anywhere := true, false
		for i, p := range pool {
			s, err := seq.New(p.name, p.bases, p.topology())
			if err != nil {
				usable = false
				break
			}
			sites, err := digest.CutSites(s, []enzyme.Enzyme{e})
			if err != nil || len(sites) > maxCuts {
				usable = false
				break
			}
			counts[i] = len(sites)
			if counts[i] > 0 {
				anywhere = true
			}
		}
		if usable && anywhere {
			cuts[e.Name] = counts
			candidates = append(candidates, e)
		}
	}

	covers := func(set []enzyme.Enzyme) bool {
		for i := range pool {
			total := 0
			for _, e := range set {
				total += cuts[e.Name][i]
			}
			if total == 0 {
				return false
			}
		}
		return true
	}

	var sets [][]enzyme.Enzyme
	for i, e := range candidates {
		if covers([]enzyme.Enzyme{e}) {
			sets = append(sets, []enzyme.Enzyme{e})
		}
		for j := i + 1; j < len(candidates); j++ {
			pair := []enzyme.Enzyme{e, candidates[j]}
			if covers(pair) {
				sets = append(sets, pair)
			}
		}
	}
	return sets
}

func mergeDiags(a, b Diagnostics) Diagnostics {
	return Diagnostics{
		InternalCutViolation:    a.InternalCutViolation || b.InternalCutViolation,
		FrameViolation:          a.FrameViolation || b.FrameViolation,
		DirectionalityViolation: a.DirectionalityViolation || b.DirectionalityViolation,
	}
}

// successor applies a result to a state, rebuilding the part pool and
// rescoring.
func (pl *Planner) successor(st state, act Action, res result, c Constraints) state {
	next := state{
		enzymeSteps:  map[string]int{},
		buffers:      st.buffers,
		lastBuffer:   st.lastBuffer,
		internalCuts: st.internalCuts,
		goldenGate:   st.goldenGate || act.Kind == KindGoldenGate,
	}
	for k, v := range st.enzymeSteps {
		next.enzymeSteps[k] = v
	}
	next.junctions = append(append([]junction(nil), st.junctions...), res.junctions...)

	consumed := map[string]bool{}
	for _, name := range res.consumed {
		consumed[name] = true
	}
	for _, p := range st.parts {
		if !consumed[p.name] {
			next.parts = append(next.parts, p)
		}
	}
	next.parts = append(next.parts, res.outputs...)
	sortParts(next.parts)

	if res.diags.InternalCutViolation {
		next.internalCuts++
	}

	for _, name := range act.Enzymes {
		next.enzymeSteps[name]++
	}
	if len(act.Enzymes) > 0 {
		buf := strings.Join(act.Enzymes, "+")
		if next.lastBuffer != "" && buf != next.lastBuffer {
			next.buffers++
		}
		next.lastBuffer = buf
	}

	step := Step{
		Kind:        act.Kind.String(),
		Inputs:      act.Inputs,
		Enzymes:     act.Enzymes,
		Outputs:     partNames(res.outputs),
		Feasible:    true,
		Diagnostics: res.diags,
	}
	next.steps = append(append([]Step(nil), st.steps...), step)

	next.score = pl.scoreState(next, c)
	return next
}

// scoreState computes the additive score of a state under the configured
// weights. Lower is better.
func (pl *Planner) scoreState(st state, c Constraints) float64 {
	w := pl.conf.Weights

	score := w.Step * float64(len(st.steps))
	score += w.Enzyme * float64(len(st.enzymeSteps))
	score += w.BufferSwitch * float64(st.buffers)
	score += w.InternalCut * float64(st.internalCuts)

	scar, nondirectional := 0, 0
	for _, j := range st.junctions {
		scar += j.scar
		if !j.directional {
			nondirectional++
		}
	}
	score += w.Scar * float64(scar)
	score += w.NonDirectional * float64(nondirectional)

	if st.goldenGate {
		score += w.GoldenGate
		if c.PreferTypeIIS {
			score += w.GoldenGate
		}
	}

	reused := 0
	for _, count := range st.enzymeSteps {
		if count >= 2 {
			reused++
		}
	}
	score += w.EnzymeReuse * float64(reused)
	return score
}

// terminalPart returns the index of a part matching the target, or -1.
func (pl *Planner) terminalPart(st state, spec Spec) int {
	wantCircular := spec.Target.Topology != "linear"

	for i, p := range st.parts {
		if p.circular != wantCircular {
			continue
		}
		if !orderMatches(p.parts, spec.Target.Order, wantCircular) {
			continue
		}
		if !junctionsSatisfied(p.junctions, spec.Target.Junctions) {
			continue
		}
		return i
	}
	return -1
}

// finishPlan converts the winning state into a Plan.
func (pl *Planner) finishPlan(st state, spec Spec, target string) Plan {
	product := ""
	if i := pl.terminalPart(st, spec); i >= 0 {
		product = st.parts[i].bases
	}

	return Plan{
		Target:   target,
		Steps:    st.steps,
		Score:    st.score,
		Feasible: true,
		Product:  product,
	}
}

// prune deduplicates successors by content signature and keeps the
// lowest-scoring beamWidth states. Ordering is stable on generation order
// so results don't depend on expansion scheduling.
func prune(successors []state, beamWidth int) []state {
	seen := map[string]int{}
	var unique []state
	for _, st := range successors {
		sig := stateSignature(st.parts, st.steps)
		if i, dup := seen[sig]; dup {
			if st.score < unique[i].score {
				unique[i] = st
			}
			continue
		}
		seen[sig] = len(unique)
		unique = append(unique, st)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].score < unique[j].score
	})
	if len(unique) > beamWidth {
		unique = unique[:beamWidth]
	}
	return unique
}

// junctionsAllowed prunes joins that contradict a hard junction
// requirement: a required-directional junction resolved non-directionally.
func junctionsAllowed(made []junction, specs []JunctionSpec) bool {
	for _, j := range made {
		for _, js := range specs {
			if js.Left != j.left || js.Right != j.right {
				continue
			}
			if js.Directional && !j.directional {
				return false
			}
			if js.KeepFrame && !j.frameOK {
				return false
			}
			if js.MaxScar > 0 && j.scar > js.MaxScar {
				return false
			}
		}
	}
	return true
}

// junctionsSatisfied checks a finished part's junctions against every
// junction requirement of the target.
func junctionsSatisfied(made []junction, specs []JunctionSpec) bool {
	for _, js := range specs {
		found := false
		for _, j := range made {
			if js.Left == j.left && js.Right == j.right {
				found = true
				if js.Directional && !j.directional {
					return false
				}
				if js.KeepFrame && !j.frameOK {
					return false
				}
				if js.MaxScar > 0 && j.scar > js.MaxScar {
					return false
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// orderMatches compares a part's contents to the target order; circular
// targets match any rotation.
func orderMatches(got, want []string, circular bool) bool {
	if len(got) != len(want) || len(want) == 0 {
		return false
	}

	if !circular {
		for i := range want {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}

	for offset := 0; offset < len(got); offset++ {
		all := true
		for i := range want {
			if got[(offset+i)%len(got)] != want[i] {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// potParts collects one part per target name for a Golden Gate pot, in
// target order. Only intact pools qualify: every target part present as
// its own pool entry.
func potParts(parts []part, order []string) ([]part, bool) {
	byName := map[string]part{}
	for _, p := range parts {
		if len(p.parts) == 1 {
			byName[p.parts[0]] = p
		}
	}

	pot := make([]part, 0, len(order))
	for _, name := range order {
		p, ok := byName[name]
		if !ok {
			return nil, false
		}
		pot = append(pot, p)
	}
	return pot, len(pot) > 1
}

func sortParts(parts []part) {
	sort.Slice(parts, func(i, j int) bool { return parts[i].name < parts[j].name })
}

func partNames(parts []part) []string {
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, p.name)
	}
	return names
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
