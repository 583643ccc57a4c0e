package enzyme

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// builtin is the default enzyme collection in marker notation. Type IIS
// enzymes carry their downstream spacer as N's inside the site so the cut
// offsets fall where the enzyme actually cuts.
var builtin = map[string]string{
	"EcoRI":   "G^AATT_C",
	"BamHI":   "G^GATC_C",
	"BglII":   "A^GATC_T",
	"HindIII": "A^AGCT_T",
	"XhoI":    "C^TCGA_G",
	"SalI":    "G^TCGA_C",
	"NdeI":    "CA^TA_TG",
	"NcoI":    "C^CATG_G",
	"NotI":    "GC^GGCC_GC",
	"SpeI":    "A^CTAG_T",
	"XbaI":    "T^CTAG_A",
	"NheI":    "G^CTAG_C",
	"MseI":    "T^TA_A",
	"SmaI":    "CCC^_GGG",
	"EcoRV":   "GAT^_ATC",
	"PvuII":   "CAG^_CTG",
	"PstI":    "C_TGCA^G",
	"SacI":    "G_AGCT^C",
	"KpnI":    "G_GTAC^C",
	"SphI":    "G_CATG^C",
	"BsaI":    "GGTCTCN^NNNN_",
	"BsmBI":   "CGTCTCN^NNNN_",
	"BbsI":    "GAAGACNN^NNNN_",
}

// typeIIS marks the builtin enzymes that cut outside their recognition core
var typeIIS = map[string]bool{
	"BsaI":  true,
	"BsmBI": true,
	"BbsI":  true,
}

// DB is a collection of enzymes keyed by name. It is loaded once and passed
// explicitly into digestion and planning calls; there is no global state.
type DB struct {
	// enzymes is a map between an enzyme's name and its marked site
	enzymes map[string]string

	// iis is the set of names flagged as Type IIS
	iis map[string]bool
}

// NewDB returns a DB seeded with the builtin enzyme collection.
func NewDB() *DB {
	enzymes := make(map[string]string, len(builtin))
	for name, site := range builtin {
		enzymes[name] = site
	}

	iis := make(map[string]bool, len(typeIIS))
	for name := range typeIIS {
		iis[name] = true
	}

	return &DB{enzymes: enzymes, iis: iis}
}

// LoadTSV merges enzymes from a tab-separated file of
// "name<TAB>marked-site" lines into the DB, overwriting duplicates.
// An enzyme whose site trails off in N's past its cut is flagged Type IIS.
func (d *DB) LoadTSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		columns := strings.Split(line, "\t")
		if len(columns) < 2 {
			return fmt.Errorf("malformed enzyme line %q in %s", line, path)
		}

		name, site := columns[0], columns[1]
		if _, err := Parse(name, site); err != nil {
			return err
		}

		d.enzymes[name] = site
		if strings.HasSuffix(strings.Trim(site, "^_"), "NNNN") {
			d.iis[name] = true
		}
	}
	return scanner.Err()
}

// Get parses and returns the enzyme with the given name.
func (d *DB) Get(name string) (Enzyme, error) {
	site, ok := d.enzymes[name]
	if !ok {
		return Enzyme{}, fmt.Errorf("enzyme %q is not in the database", name)
	}

	enz, err := Parse(name, site)
	if err != nil {
		return Enzyme{}, err
	}
	enz.TypeIIS = d.iis[name]
	return enz, nil
}

// GetAll resolves a list of enzyme names.
func (d *DB) GetAll(names []string) ([]Enzyme, error) {
	enzymes := make([]Enzyme, 0, len(names))
	for _, name := range names {
		enz, err := d.Get(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		enzymes = append(enzymes, enz)
	}
	return enzymes, nil
}

// Names returns every enzyme name, sorted.
func (d *DB) Names() []string {
	names := make([]string, 0, len(d.enzymes))
	for name := range d.enzymes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Site returns the marked recognition site for a name, for display.
func (d *DB) Site(name string) string {
	return d.enzymes[name]
}

// Find returns enzyme names similar to the query: names containing it, or
// failing enough of those, names within a small edit distance.
func (d *DB) Find(query string) []string {
	const ldCutoff = 2

	containing := []string{}
	lowDistance := []string{}
	for _, name := range d.Names() {
		if strings.Contains(strings.ToLower(name), strings.ToLower(query)) {
			containing = append(containing, name)
		} else if len(name) > ldCutoff && ld(query, name, true) <= ldCutoff {
			lowDistance = append(lowDistance, name)
		}
	}

	if len(containing) < 3 {
		containing = append(containing, lowDistance...)
	}
	return containing
}

// ld is the levenshtein distance between two strings
func ld(s, t string, ignoreCase bool) int {
	if ignoreCase {
		s = strings.ToLower(s)
		t = strings.ToLower(t)
	}

	d := make([][]int, len(s)+1)
	for i := range d {
		d[i] = make([]int, len(t)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}

	for j := 1; j <= len(t); j++ {
		for i := 1; i <= len(s); i++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}

			min := d[i-1][j] + 1
			if d[i][j-1]+1 < min {
				min = d[i][j-1] + 1
			}
			if d[i-1][j-1]+cost < min {
				min = d[i-1][j-1] + cost
			}
			d[i][j] = min
		}
	}
	return d[len(s)][len(t)]
}
