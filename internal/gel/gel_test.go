package gel

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"cloneplan/internal/digest"
	"cloneplan/internal/enzyme"
)

func Test_Render(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []Lane{{Name: "plasmid", Lengths: []int{3000, 700}}})

	out := buf.String()
	if !strings.Contains(out, "ladder") || !strings.Contains(out, "plasmi") {
		t.Errorf("Render() header missing lanes:\n%s", out)
	}
	if !strings.Contains(out, "======") {
		t.Errorf("Render() drew no bands:\n%s", out)
	}
	if !strings.Contains(out, "1000 bp") {
		t.Errorf("Render() missing ladder labels:\n%s", out)
	}

	// larger fragments sit higher on the gel
	rows := strings.Split(out, "\n")
	rowOf := func(sub string) int {
		for i, row := range rows {
			if strings.Contains(row, sub) && strings.Contains(row, "bp") {
				return i
			}
		}
		return -1
	}
	if rowOf("5000 bp") >= rowOf("300 bp") {
		t.Error("Render() band order inverted")
	}

	buf.Reset()
	Render(&buf, nil)
	if !strings.Contains(buf.String(), "bp") {
		t.Errorf("Render() with no lanes still shows the ladder:\n%s", buf.String())
	}
}

func Test_Table(t *testing.T) {
	frags := []digest.Fragment{
		{
			Start: 0, End: 3, Length: 3,
			LeftEnd:  digest.End{Type: enzyme.Blunt},
			RightEnd: digest.End{Type: enzyme.FivePrime, Seq: "AATT", Len: 4, Enzyme: "EcoRI"},
		},
		{
			Start: 3, End: 10, Length: 7,
			LeftEnd:  digest.End{Type: enzyme.FivePrime, Seq: "AATT", Len: 4, Enzyme: "EcoRI"},
			RightEnd: digest.End{Type: enzyme.Blunt, Len: 0, Enzyme: "SmaI"},
		},
	}

	var buf bytes.Buffer
	Table(&buf, frags)

	out := buf.String()
	for _, want := range []string{"natural", "EcoRI (5' AATT)", "SmaI (blunt)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table() missing %q:\n%s", want, out)
		}
	}
}

func Test_SortedLengths(t *testing.T) {
	frags := []digest.Fragment{{Length: 100}, {Length: 3000}, {Length: 700}}
	if got := SortedLengths(frags); !reflect.DeepEqual(got, []int{3000, 700, 100}) {
		t.Errorf("SortedLengths() = %v", got)
	}
}
