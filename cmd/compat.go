package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cloneplan/internal/ligate"
)

var (
	compatEnzymes     string
	compatBlunt       bool
	compatDirectional bool
)

// compatCmd prints which enzymes leave mutually ligatable ends, straight
// from their recognition-site templates
var compatCmd = &cobra.Command{
	Use:   "compat",
	Short: "Show which enzymes leave compatible (ligatable) ends",
	Long: `Check end compatibility between enzymes before touching any DNA:
for each pair, whether the overhangs they leave could anneal, and whether
such a junction would be directional.

The check is template-based (IUPAC aware), so degenerate sites pass when
any concrete cut they make would.`,
	Run: runCompat,
}

func init() {
	rootCmd.AddCommand(compatCmd)

	compatCmd.Flags().StringVarP(&compatEnzymes, "enzymes", "e", "", "comma-separated enzyme names (default: the whole database)")
	compatCmd.Flags().BoolVar(&compatBlunt, "blunt", false, "count blunt-blunt pairs as compatible")
	compatCmd.Flags().BoolVar(&compatDirectional, "directional-only", false, "only show orientation-fixing pairs")
}

func runCompat(cmd *cobra.Command, args []string) {
	db := enzymeDB()

	names := db.Names()
	if compatEnzymes != "" {
		names = strings.Split(compatEnzymes, ",")
	}

	ends := make([]ligate.TheoreticalEnd, 0, len(names))
	for _, name := range names {
		enz, err := db.Get(strings.TrimSpace(name))
		if err != nil {
			stderr.Fatalf("%v", err)
		}

		end, err := ligate.NewTheoreticalEnd(enz)
		if err != nil {
			stderr.Printf("skipping %s: %v", enz.Name, err)
			continue
		}
		ends = append(ends, end)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(w, "enzyme A\tenzyme B\toverhang\tlen\tdirectional")
	pairs := 0
	for i := 0; i < len(ends); i++ {
		for j := i; j < len(ends); j++ {
			if !ligate.TheoreticallyCompatible(ends[i], ends[j], compatBlunt) {
				continue
			}

			directional := ligate.TemplateDirectional(ends[i])
			if compatDirectional && !directional {
				continue
			}

			overhang := ends[i].Template
			if overhang == "" {
				overhang = "(blunt)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\n", ends[i].Enzyme, ends[j].Enzyme, overhang, ends[i].Len, directional)
			pairs++
		}
	}
	w.Flush()

	if pairs == 0 {
		fmt.Println("no compatible pairs")
	}
}
