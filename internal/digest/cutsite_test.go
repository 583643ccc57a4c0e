package digest

import (
	"strings"
	"testing"

	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// plant copies site into a background at the given offset
func plant(background string, at int, site string) string {
	b := []byte(background)
	copy(b[at:], site)
	return string(b)
}

func mustSeq(t *testing.T, id, bases string, topology seq.Topology) seq.Seq {
	t.Helper()
	s, err := seq.New(id, bases, topology)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustEnzyme(t *testing.T, db *enzyme.DB, name string) enzyme.Enzyme {
	t.Helper()
	enz, err := db.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return enz
}

func Test_CutSites(t *testing.T) {
	db := enzyme.NewDB()
	ecoRI := mustEnzyme(t, db, "EcoRI")
	bamHI := mustEnzyme(t, db, "BamHI")
	bsaI := mustEnzyme(t, db, "BsaI")

	t.Run("single palindromic site", func(t *testing.T) {
		s := mustSeq(t, "s", "AAGAATTCTT", seq.Linear)
		sites, err := CutSites(s, []enzyme.Enzyme{ecoRI})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 1 || sites[0].Pos != 3 || sites[0].Strand != 1 {
			t.Errorf("CutSites() = %+v, want one +1 cut at 3", sites)
		}
	})

	t.Run("two enzymes sorted by position", func(t *testing.T) {
		bases := plant(plant(strings.Repeat("CT", 30), 5, "GAATTC"), 40, "GGATCC")
		s := mustSeq(t, "s", bases, seq.Linear)

		sites, err := CutSites(s, []enzyme.Enzyme{bamHI, ecoRI})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 2 || sites[0].Pos != 6 || sites[1].Pos != 41 {
			t.Errorf("CutSites() = %+v, want cuts at 6 and 41", sites)
		}
		if sites[0].Enzymes[0].Name != "EcoRI" || sites[1].Enzymes[0].Name != "BamHI" {
			t.Errorf("CutSites() enzyme attribution = %+v", sites)
		}
	})

	t.Run("type IIS forward strand", func(t *testing.T) {
		// GGTCTC at 10, spacer then the cut at 17
		bases := plant(strings.Repeat("CT", 20), 10, "GGTCTCAACGA")
		s := mustSeq(t, "s", bases, seq.Linear)

		sites, err := CutSites(s, []enzyme.Enzyme{bsaI})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 1 || sites[0].Pos != 17 || sites[0].Strand != 1 {
			t.Errorf("CutSites() = %+v, want one +1 cut at 17", sites)
		}
	})

	t.Run("type IIS reverse strand", func(t *testing.T) {
		// GAGACC at 13 is a bottom-strand BsaI site cutting back at 8
		bases := plant(strings.Repeat("CT", 20), 8, "CCGTAGAGACC")
		s := mustSeq(t, "s", bases, seq.Linear)

		sites, err := CutSites(s, []enzyme.Enzyme{bsaI})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 1 || sites[0].Pos != 8 || sites[0].Strand != -1 {
			t.Errorf("CutSites() = %+v, want one -1 cut at 8", sites)
		}
	})

	t.Run("circular cut position wraps mod length", func(t *testing.T) {
		// site straddles the origin: GAA at the tail, TTC at the head
		s := mustSeq(t, "s", "TTCATATATATATATATGAA", seq.Circular)
		sites, err := CutSites(s, []enzyme.Enzyme{ecoRI})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 1 || sites[0].Pos != 18 {
			t.Errorf("CutSites() = %+v, want one cut at 18", sites)
		}
	})

	t.Run("coincident cuts merge", func(t *testing.T) {
		// EcoRI listed twice must not double-count
		s := mustSeq(t, "s", "AAGAATTCTT", seq.Linear)
		sites, err := CutSites(s, []enzyme.Enzyme{ecoRI, ecoRI})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 1 || len(sites[0].Enzymes) != 1 {
			t.Errorf("CutSites() = %+v, want one cut with one enzyme", sites)
		}
	})

	t.Run("non-cutters are skipped", func(t *testing.T) {
		nc := enzyme.Enzyme{Name: "nc", Site: "GAATTC", CutTop: -1, CutBottom: -1}
		s := mustSeq(t, "s", "AAGAATTCTT", seq.Linear)
		sites, err := CutSites(s, []enzyme.Enzyme{nc})
		if err != nil {
			t.Fatal(err)
		}
		if len(sites) != 0 {
			t.Errorf("CutSites() = %+v, want none", sites)
		}
	})

	t.Run("empty circular sequence", func(t *testing.T) {
		s := seq.Seq{ID: "empty", Topology: seq.Circular}
		if _, err := CutSites(s, []enzyme.Enzyme{ecoRI}); err == nil {
			t.Error("CutSites() on an empty circle did not error")
		}
	})
}
