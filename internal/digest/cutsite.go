package digest

import (
	"sort"

	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// CutSite is one absolute cut position on a sequence. Multiple enzymes may
// cut at the same position; every contributor is kept for end annotation.
type CutSite struct {
	// Pos is the top-strand cut position, 0-based
	Pos int

	// Strand is +1 for a site read off the top strand, -1 for one found
	// on the reverse complement
	Strand int

	// Enzymes that cut here, in the order they were encountered
	Enzymes []enzyme.Enzyme
}

// CutSites locates every cut the given enzymes make in s, on both strands,
// and returns them sorted by position with coincident cuts merged. Enzymes
// without a top-strand cut offset are skipped.
func CutSites(s seq.Seq, enzymes []enzyme.Enzyme) ([]CutSite, error) {
	n := s.Len()
	if n == 0 {
		if s.Topology == seq.Circular {
			return nil, seq.ErrDegenerateTopology
		}
		return nil, nil
	}

	byPos := make(map[int]*CutSite)
	var positions []int

	record := func(pos, strand int, enz enzyme.Enzyme) {
		if s.Topology == seq.Circular {
			pos = ((pos % n) + n) % n
		} else if pos < 0 || pos > n {
			// cut falls off the end of a linear molecule
			return
		}

		site, seen := byPos[pos]
		if !seen {
			site = &CutSite{Pos: pos, Strand: strand}
			byPos[pos] = site
			positions = append(positions, pos)
		}
		for _, prior := range site.Enzymes {
			if prior.Name == enz.Name {
				return
			}
		}
		site.Enzymes = append(site.Enzymes, enz)
	}

	for _, enz := range enzymes {
		if !enz.Cuts() {
			continue
		}

		// bottom-strand cut offset, inferred symmetric when undeclared
		hang := enz.CutBottom
		if hang < 0 {
			hang = len(enz.Site) - enz.CutTop
		}

		// top strand
		occs, err := enzyme.FindAll(s, enz.Site)
		if err != nil {
			return nil, err
		}
		for _, p := range occs {
			record(p+enz.CutTop, +1, enz)
		}

		// reverse strand, unless the site is its own reverse complement
		// (its matches would duplicate the top strand's)
		rc := seq.RevComp(enz.Site)
		if rc == enz.Site {
			continue
		}
		occs, err = enzyme.FindAll(s, rc)
		if err != nil {
			return nil, err
		}
		for _, p := range occs {
			record(p+len(enz.Site)-hang, -1, enz)
		}
	}

	sort.Ints(positions)
	sites := make([]CutSite, 0, len(positions))
	for _, pos := range positions {
		sites = append(sites, *byPos[pos])
	}
	return sites, nil
}
