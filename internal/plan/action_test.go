package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloneplan/internal/digest"
	"cloneplan/internal/enzyme"
	"cloneplan/internal/seq"
)

// plant copies site into a background at the given offset
func plant(background string, at int, site string) string {
	b := []byte(background)
	copy(b[at:], site)
	return string(b)
}

func mustPart(t *testing.T, name, bases string, topology seq.Topology, features ...Feature) part {
	t.Helper()
	c, err := NewConstruct(name, bases, topology, features)
	require.NoError(t, err)
	return newPart(c)
}

func mustGet(t *testing.T, db *enzyme.DB, name string) enzyme.Enzyme {
	t.Helper()
	enz, err := db.Get(name)
	require.NoError(t, err)
	return enz
}

// a circular backbone with one EcoRI site (cut 10) and one BamHI site
// (cut 40); the 50 bp wrap fragment is the backbone payload
func testVector(t *testing.T) part {
	bases := plant(plant(strings.Repeat("CT", 40), 9, "GAATTC"), 39, "GGATCC")
	return mustPart(t, "vector", bases, seq.Circular)
}

// a linear insert with an EcoRI cut at 6 and a BamHI cut at 50; the 44 bp
// middle fragment is the payload
func testInsert(t *testing.T, features ...Feature) part {
	bases := plant(plant(strings.Repeat("CT", 30), 5, "GAATTC"), 49, "GGATCC")
	return mustPart(t, "insert", bases, seq.Linear, features...)
}

func Test_applyDigest(t *testing.T) {
	db := enzyme.NewDB()
	enzymes := []enzyme.Enzyme{mustGet(t, db, "BamHI"), mustGet(t, db, "EcoRI")}

	t.Run("circular double digest", func(t *testing.T) {
		res, err := applyDigest(testVector(t), enzymes, false)
		require.NoError(t, err)
		require.Len(t, res.outputs, 2)
		assert.Equal(t, []string{"vector"}, res.consumed)

		stuffer, backbone := res.outputs[0], res.outputs[1]
		assert.Len(t, stuffer.bases, 30)
		assert.Empty(t, stuffer.parts, "the smaller fragment loses the identity")

		assert.Len(t, backbone.bases, 50)
		assert.Equal(t, []string{"vector"}, backbone.parts)
		assert.Equal(t, "GATC", backbone.left.Seq, "wrap fragment starts at the BamHI cut")
		assert.Equal(t, "AATT", backbone.right.Seq)
		assert.False(t, backbone.circular)
	})

	t.Run("payload follows the features", func(t *testing.T) {
		// a feature in the short upstream fragment moves the identity there
		ins := testInsert(t, Feature{Label: "tag", Start: 1, End: 5})
		res, err := applyDigest(ins, enzymes, false)
		require.NoError(t, err)
		require.Len(t, res.outputs, 3)

		assert.Equal(t, []string{"insert"}, res.outputs[0].parts)
		assert.Empty(t, res.outputs[1].parts)
		require.Len(t, res.outputs[0].features, 1)
		assert.Equal(t, 1, res.outputs[0].features[0].Start, "feature stays in local coordinates")
	})

	t.Run("protected feature under a cut", func(t *testing.T) {
		ins := testInsert(t, Feature{Label: "orf", Start: 2, End: 55, Protected: true})
		res, err := applyDigest(ins, enzymes, false)
		require.NoError(t, err)
		assert.True(t, res.diags.InternalCutViolation)
	})

	t.Run("dephosphorylation is inherited", func(t *testing.T) {
		res, err := applyDigest(testVector(t), enzymes, true)
		require.NoError(t, err)
		for _, out := range res.outputs {
			assert.True(t, out.dephos)
		}
	})

	t.Run("enzyme that does not cut", func(t *testing.T) {
		_, err := applyDigest(testVector(t), []enzyme.Enzyme{mustGet(t, db, "NotI")}, false)
		assert.Error(t, err)
	})
}

func Test_applyLigate(t *testing.T) {
	up := part{
		name:  "up",
		bases: "AAA",
		left:  digest.End{Type: enzyme.Blunt},
		right: digest.End{Type: enzyme.FivePrime, Seq: "ACTG", Len: 4, Enzyme: "X"},
		parts: []string{"up"},
	}
	down := part{
		name:  "down",
		bases: "ATGAAA",
		left:  digest.End{Type: enzyme.FivePrime, Seq: "CAGT", Len: 4, Enzyme: "X"},
		right: digest.End{Type: enzyme.Blunt},
		parts: []string{"down"},
		features: []Feature{
			{Label: "orf", Kind: "CDS", Start: 0, End: 6, Frame: 0, Direction: 1},
		},
	}

	t.Run("directional join", func(t *testing.T) {
		res, err := applyLigate(up, down, 4, false)
		require.NoError(t, err)
		require.Len(t, res.outputs, 1)

		out := res.outputs[0]
		assert.Equal(t, "AAAATGAAA", out.bases)
		assert.Equal(t, []string{"up", "down"}, out.parts)
		assert.False(t, out.circular)

		require.Len(t, res.junctions, 1)
		assert.True(t, res.junctions[0].directional)
		assert.Equal(t, 4, res.junctions[0].scar)
		assert.True(t, res.junctions[0].frameOK, "a 3 bp upstream part preserves frame")
	})

	t.Run("frame violation", func(t *testing.T) {
		shifted := up
		shifted.bases = "AAAA" // 4 bp knocks the CDS out of frame
		res, err := applyLigate(shifted, down, 4, true)
		require.NoError(t, err)
		assert.True(t, res.diags.FrameViolation)
		assert.False(t, res.junctions[0].frameOK)
	})

	t.Run("incompatible ends", func(t *testing.T) {
		flipped := down
		flipped.left = digest.End{Type: enzyme.FivePrime, Seq: "ACTG", Len: 4, Enzyme: "X"}
		_, err := applyLigate(up, flipped, 4, false)
		assert.Error(t, err)
	})

	t.Run("minimum overhang", func(t *testing.T) {
		_, err := applyLigate(up, down, 5, false)
		assert.Error(t, err)
	})

	t.Run("self circularization", func(t *testing.T) {
		ring := part{
			name:  "ring",
			bases: "ATATAT",
			left:  digest.End{Type: enzyme.FivePrime, Seq: "AATT", Len: 4, Enzyme: "EcoRI"},
			right: digest.End{Type: enzyme.FivePrime, Seq: "AATT", Len: 4, Enzyme: "EcoRI"},
			parts: []string{"ring"},
		}

		res, err := applyLigate(ring, ring, 4, false)
		require.NoError(t, err)
		out := res.outputs[0]
		assert.True(t, out.circular)
		assert.True(t, res.diags.DirectionalityViolation, "palindromic self-ligation is ambiguous")

		dephosed := ring
		dephosed.dephos = true
		_, err = applyLigate(dephosed, dephosed, 4, false)
		assert.Error(t, err, "dephosphorylated ends cannot self-ligate")
	})

	t.Run("circular input rejected", func(t *testing.T) {
		circ := up
		circ.circular = true
		_, err := applyLigate(circ, down, 0, false)
		assert.Error(t, err)
	})
}

func Test_applyGoldenGate(t *testing.T) {
	db := enzyme.NewDB()
	bsaI := mustGet(t, db, "BsaI")

	// a circular donor whose backbone payload is released with a CAAG
	// left overhang (bottom-strand site cutting at 20) and an ACGG right
	// overhang (top-strand site cutting at 90)
	vector := mustPart(t, "vector",
		plant(plant(strings.Repeat("CT", 60), 20, "CAAGAGAGACC"), 83, "GGTCTCAACGG"),
		seq.Circular)

	// a linear insert releasing a payload with CCGT (= revcomp ACGG) on
	// the left and CTTG on the right
	insert := mustPart(t, "insert",
		plant(plant(strings.Repeat("CT", 50), 15, "CCGTAGAGACC"), 73, "GGTCTCACTTG"),
		seq.Linear)

	t.Run("one pot assembly", func(t *testing.T) {
		res, err := applyGoldenGate([]part{vector, insert}, bsaI, 4)
		require.NoError(t, err)
		require.Len(t, res.outputs, 1)

		out := res.outputs[0]
		assert.Equal(t, "goldengate(vector,insert)", out.name)
		assert.True(t, out.circular)
		assert.Equal(t, []string{"vector", "insert"}, out.parts)
		assert.Len(t, out.bases, 70+65)

		require.Len(t, res.junctions, 2)
		for _, j := range res.junctions {
			assert.True(t, j.directional, "designed overhangs fix orientation")
		}
		assert.False(t, res.diags.DirectionalityViolation)
	})

	t.Run("duplicate overhangs scramble the pot", func(t *testing.T) {
		_, err := applyGoldenGate([]part{insert, insert}, bsaI, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate overhang")
	})

	t.Run("only type IIS enzymes", func(t *testing.T) {
		_, err := applyGoldenGate([]part{vector, insert}, mustGet(t, db, "EcoRI"), 0)
		assert.Error(t, err)
	})
}

func Test_applyPCR(t *testing.T) {
	_, err := applyPCR(Action{Kind: KindPCR, Inputs: []string{"insert"}})
	assert.ErrorIs(t, err, errPCRNotSimulated)
}
