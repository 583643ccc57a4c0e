// Package enzyme models restriction enzymes: their degenerate recognition
// sites, cut offsets and overhang geometry, plus the IUPAC-aware motif
// matcher used to locate sites in a sequence.
package enzyme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMotif is returned for a recognition site or search motif with a
// character outside the IUPAC alphabet.
var ErrInvalidMotif = errors.New("invalid IUPAC motif")

// ErrMissingCutIndex is returned when an enzyme without a top-strand cut
// offset is used somewhere one is mandatory, eg overhang derivation.
var ErrMissingCutIndex = errors.New("enzyme has no cut index")

// OverhangType is the single-stranded extension an enzyme leaves at a cut.
type OverhangType int

const (
	// OverhangUnknown means no declared type; infer it from the cut offsets
	OverhangUnknown OverhangType = iota

	// Blunt ends, no single-stranded extension
	Blunt

	// FivePrime overhang, recessed bottom strand
	FivePrime

	// ThreePrime overhang, recessed top strand
	ThreePrime
)

func (t OverhangType) String() string {
	switch t {
	case Blunt:
		return "blunt"
	case FivePrime:
		return "5'"
	case ThreePrime:
		return "3'"
	}
	return "unknown"
}

// Enzyme is a single restriction enzyme. Immutable once parsed.
type Enzyme struct {
	// Name, eg "EcoRI"
	Name string

	// Site is the recognition site with the cut markers stripped
	Site string

	// CutTop is the top-strand cut offset from the start of the site,
	// or -1 for an enzyme declared without one (a non-cutter here)
	CutTop int

	// CutBottom is the bottom-strand cut offset, or -1 when unspecified
	CutBottom int

	// Declared overhang type; OverhangUnknown means infer from the offsets
	Declared OverhangType

	// TypeIIS is set for enzymes cutting downstream of their recognition
	// site, the kind used for Golden Gate assembly
	TypeIIS bool
}

// Parse builds an Enzyme from a recognition sequence in marker notation:
// "^" is the top-strand cut and "_" the bottom-strand cut, eg EcoRI is
// "G^AATT_C" and blunt SmaI is "CCC^_GGG". Either or both markers may be
// absent; an enzyme without "^" is treated as non-cutting.
func Parse(name, marked string) (Enzyme, error) {
	marked = strings.ToUpper(strings.TrimSpace(marked))
	cutIndex := strings.Index(marked, "^")
	hangIndex := strings.Index(marked, "_")

	if strings.Count(marked, "^") > 1 || strings.Count(marked, "_") > 1 {
		return Enzyme{}, fmt.Errorf("%w: repeated cut marker in %s", ErrInvalidMotif, marked)
	}

	// removing the first marker shifts the second one left
	if cutIndex >= 0 && hangIndex >= 0 {
		if cutIndex < hangIndex {
			hangIndex--
		} else {
			cutIndex--
		}
	}

	site := strings.Replace(marked, "^", "", -1)
	site = strings.Replace(site, "_", "", -1)

	if _, err := CompileMotif(site); err != nil {
		return Enzyme{}, fmt.Errorf("enzyme %s: %w", name, err)
	}

	if cutIndex < 0 {
		cutIndex = -1
	}
	if hangIndex < 0 {
		hangIndex = -1
	}

	return Enzyme{
		Name:      name,
		Site:      site,
		CutTop:    cutIndex,
		CutBottom: hangIndex,
	}, nil
}

// Cuts returns whether the enzyme has a top-strand cut offset. Enzymes
// without one are silently skipped during digestion.
func (e Enzyme) Cuts() bool {
	return e.CutTop >= 0
}

// OverhangLen is the length of the single-stranded extension this enzyme
// leaves. The declared bottom cut wins; the symmetric-site inference
// d = 2*cutTop - len(site) is the fallback.
func (e Enzyme) OverhangLen() (int, error) {
	if !e.Cuts() {
		return 0, fmt.Errorf("%w: %s", ErrMissingCutIndex, e.Name)
	}
	if len(e.Site) == 0 {
		return 0, nil
	}

	if e.CutBottom >= 0 {
		d := e.CutBottom - e.CutTop
		if d < 0 {
			d = -d
		}
		return d, nil
	}

	d := 2*e.CutTop - len(e.Site)
	if d < 0 {
		d = -d
	}
	return d, nil
}

// OverhangType resolves the enzyme's overhang type: the declared type when
// present, otherwise inferred from the cut offsets.
func (e Enzyme) OverhangType() (OverhangType, error) {
	if e.Declared != OverhangUnknown {
		return e.Declared, nil
	}
	if !e.Cuts() {
		return OverhangUnknown, fmt.Errorf("%w: %s", ErrMissingCutIndex, e.Name)
	}
	if len(e.Site) == 0 {
		// cut offset but no site to measure against
		return Blunt, nil
	}

	if e.CutBottom >= 0 {
		switch {
		case e.CutBottom > e.CutTop:
			return FivePrime, nil
		case e.CutBottom < e.CutTop:
			return ThreePrime, nil
		}
		return Blunt, nil
	}

	switch d := 2*e.CutTop - len(e.Site); {
	case d > 0:
		return FivePrime, nil
	case d < 0:
		return ThreePrime, nil
	}
	return Blunt, nil
}

// OverhangTemplate is the IUPAC template of the sticky end the enzyme
// leaves, read 5'->3' off the recognition site. Used for theoretical
// compatibility checks where no concrete sequence exists yet.
func (e Enzyme) OverhangTemplate() (string, error) {
	k, err := e.OverhangLen()
	if err != nil {
		return "", err
	}
	if k == 0 {
		return "", nil
	}

	t, err := e.OverhangType()
	if err != nil {
		return "", err
	}

	site := e.Site
	if t == FivePrime {
		end := e.CutTop + k
		if end > len(site) {
			end = len(site)
		}
		return site[e.CutTop:end], nil
	}

	start := e.CutTop - k
	if start < 0 {
		start = 0
	}
	return site[start:e.CutTop], nil
}
