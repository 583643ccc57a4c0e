package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cloneplan/internal/digest"
	"cloneplan/internal/fasta"
	"cloneplan/internal/gel"
	"cloneplan/internal/seq"
)

var (
	digestIn        string
	digestEnzymes   string
	digestCircular  bool
	digestLinearize bool
	digestJSON      string
	digestNoGel     bool
)

// digestCmd simulates a restriction digest of each record in a FASTA file
// and renders the fragments as a table and an ASCII gel
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Simulate a restriction digest of a FASTA sequence",
	Long: `Simulate cutting each sequence in a FASTA file with one or more
restriction enzymes. Fragments are listed with their overhang annotations
and drawn on a text gel next to a size ladder.

Enzymes are named, comma-separated, and looked up in the enzyme database
(see 'cloneplan enzymes').`,
	Run: runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().StringVarP(&digestIn, "in", "i", "", "FASTA file to digest ('-' for stdin)")
	digestCmd.Flags().StringVarP(&digestEnzymes, "enzymes", "e", "", "comma-separated enzyme names")
	digestCmd.Flags().BoolVar(&digestCircular, "circular", false, "treat the input sequences as circular")
	digestCmd.Flags().BoolVar(&digestLinearize, "linearize", false, "split a single-cut circle into two fragments instead of leaving it intact")
	digestCmd.Flags().StringVar(&digestJSON, "json", "", "write the fragments as JSON to this path ('-' for stdout)")
	digestCmd.Flags().BoolVar(&digestNoGel, "no-gel", false, "skip the gel rendering")

	digestCmd.MarkFlagRequired("in")
	digestCmd.MarkFlagRequired("enzymes")
}

func runDigest(cmd *cobra.Command, args []string) {
	db := enzymeDB()
	enzymes, err := db.GetAll(strings.Split(digestEnzymes, ","))
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	records, err := fasta.Read(digestIn)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	topology := seq.Linear
	if digestCircular {
		topology = seq.Circular
	}

	lanes := []gel.Lane{}
	jsonOut := map[string][]digest.Fragment{}
	for _, rec := range records {
		s, err := seq.New(rec.ID, rec.Seq, topology)
		if err != nil {
			stderr.Fatalf("%v", err)
		}

		frags, err := digest.Digest(s, enzymes, digest.Options{Linearize: digestLinearize, WithSeq: true})
		if err != nil {
			stderr.Fatalf("failed to digest %s: %v", rec.ID, err)
		}

		fmt.Printf("%s (%d bp, %s): %d fragments\n", rec.ID, s.Len(), topology, len(frags))
		gel.Table(os.Stdout, frags)
		fmt.Println()

		lanes = append(lanes, gel.Lane{Name: rec.ID, Lengths: gel.SortedLengths(frags)})
		jsonOut[rec.ID] = frags
	}

	if !digestNoGel {
		gel.Render(os.Stdout, lanes)
	}

	if digestJSON != "" {
		b, err := json.MarshalIndent(jsonOut, "", "  ")
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		if digestJSON == "-" {
			fmt.Println(string(b))
		} else if err := os.WriteFile(digestJSON, b, 0644); err != nil {
			stderr.Fatalf("%v", err)
		}
	}
}
