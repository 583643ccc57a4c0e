package sim

import (
	"strings"
	"testing"
)

func Test_Make(t *testing.T) {
	bases := Make(100, 0.5, 42)

	if len(bases) != 100 {
		t.Fatalf("Make() length = %d, want 100", len(bases))
	}
	for i := 0; i < len(bases); i++ {
		if !strings.ContainsRune("ACGT", rune(bases[i])) {
			t.Fatalf("Make() produced %q at %d", bases[i], i)
		}
	}

	gc := strings.Count(bases, "G") + strings.Count(bases, "C")
	if gc != 50 {
		t.Errorf("Make() GC count = %d, want 50", gc)
	}

	if again := Make(100, 0.5, 42); again != bases {
		t.Error("Make() with the same seed is not reproducible")
	}
	if other := Make(100, 0.5, 43); other == bases {
		t.Error("Make() with a different seed repeated the sequence")
	}

	if Make(0, 0.5, 42) != "" {
		t.Error("Make(0) should be empty")
	}
}

func Test_WithSites(t *testing.T) {
	bases := WithSites(100, 0.5, 42, "GAATTC")

	if len(bases) != 100 {
		t.Fatalf("WithSites() length = %d, want 100", len(bases))
	}
	// one site lands at the midpoint
	if got := bases[50:56]; got != "GAATTC" {
		t.Errorf("WithSites() planted %q at 50, want GAATTC", got)
	}

	two := WithSites(90, 0.5, 42, "GAATTC", "GGATCC")
	if two[30:36] != "GAATTC" || two[60:66] != "GGATCC" {
		t.Errorf("WithSites() = %q / %q at 30/60", two[30:36], two[60:66])
	}

	// sites that would overflow the end are dropped, not truncated
	short := WithSites(8, 0.5, 42, "GAATTC", "GGATCC")
	if len(short) != 8 {
		t.Errorf("WithSites() length = %d, want 8", len(short))
	}
	if strings.Contains(short, "GGATC") {
		t.Errorf("WithSites() truncated an overflowing site: %q", short)
	}
}
