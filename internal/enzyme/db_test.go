package enzyme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func Test_DB_Get(t *testing.T) {
	db := NewDB()

	enz, err := db.Get("EcoRI")
	if err != nil {
		t.Fatal(err)
	}
	if enz.Site != "GAATTC" || enz.CutTop != 1 || enz.CutBottom != 5 {
		t.Errorf("Get(EcoRI) = %+v", enz)
	}
	if enz.TypeIIS {
		t.Error("EcoRI flagged Type IIS")
	}

	bsa, err := db.Get("BsaI")
	if err != nil {
		t.Fatal(err)
	}
	if !bsa.TypeIIS {
		t.Error("BsaI not flagged Type IIS")
	}

	if _, err := db.Get("NoSuchEnzyme"); err == nil {
		t.Error("Get() on an unknown name did not error")
	}
}

func Test_DB_LoadTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enzymes.tsv")
	contents := "# custom enzymes\n" +
		"MyEcoRI\tG^AATT_C\n" +
		"MyIIS\tGCAGTGNN^NNNN_\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	db := NewDB()
	if err := db.LoadTSV(path); err != nil {
		t.Fatal(err)
	}

	enz, err := db.Get("MyEcoRI")
	if err != nil {
		t.Fatal(err)
	}
	if enz.Site != "GAATTC" || enz.CutTop != 1 {
		t.Errorf("Get(MyEcoRI) = %+v", enz)
	}

	iis, err := db.Get("MyIIS")
	if err != nil {
		t.Fatal(err)
	}
	if !iis.TypeIIS {
		t.Error("trailing-N enzyme not flagged Type IIS")
	}

	bad := filepath.Join(t.TempDir(), "bad.tsv")
	if err := os.WriteFile(bad, []byte("OnlyOneColumn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := db.LoadTSV(bad); err == nil {
		t.Error("LoadTSV() on a malformed file did not error")
	}
}

func Test_DB_Find(t *testing.T) {
	db := NewDB()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			"exact name plus near misses",
			"EcoRI",
			[]string{"EcoRI", "EcoRV", "NcoI"},
		},
		{
			"substring",
			"Bs",
			[]string{"BbsI", "BsaI", "BsmBI"},
		},
		{
			"near miss falls back to edit distance",
			"EcaRI",
			[]string{"EcoRI", "EcoRV"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := db.Find(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
