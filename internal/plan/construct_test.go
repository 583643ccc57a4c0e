package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloneplan/internal/seq"
)

func Test_NewConstruct(t *testing.T) {
	c, err := NewConstruct("ins", "ATGAAATTTGGG", seq.Linear, []Feature{
		{Label: "orf", Kind: "CDS", Start: 3, End: 9},
	})
	require.NoError(t, err)
	assert.Equal(t, "ins", c.Name)
	assert.Equal(t, 1, c.Features[0].Direction, "direction defaults to the top strand")
	assert.Equal(t, 0, c.Features[0].Frame, "frame defaults to start mod 3")

	framed, err := NewConstruct("ins", "ATGAAATTTGGG", seq.Linear, []Feature{
		{Label: "orf", Kind: "CDS", Start: 4, End: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, framed.Features[0].Frame)

	_, err = NewConstruct("bad", "ATGAAA", seq.Linear, []Feature{
		{Label: "off", Start: 2, End: 10},
	})
	assert.Error(t, err, "feature outside the sequence")

	_, err = NewConstruct("bad", "ATGQAA", seq.Linear, nil)
	assert.Error(t, err, "invalid sequence character")
}

func Test_part_signature(t *testing.T) {
	a := part{name: "a", bases: "ACGT"}
	b := part{name: "b", bases: "ACGT"}
	assert.Equal(t, a.signature(), b.signature(), "signature ignores names")

	dephos := a
	dephos.dephos = true
	assert.NotEqual(t, a.signature(), dephos.signature())

	circ := a
	circ.circular = true
	assert.NotEqual(t, a.signature(), circ.signature())
}

func Test_stateSignature(t *testing.T) {
	a := part{name: "a", bases: "ACGT"}
	b := part{name: "b", bases: "TTTT"}

	// pool order must not matter
	assert.Equal(t,
		stateSignature([]part{a, b}, nil),
		stateSignature([]part{b, a}, nil))

	assert.NotEqual(t,
		stateSignature([]part{a}, nil),
		stateSignature([]part{a, b}, nil))
}
