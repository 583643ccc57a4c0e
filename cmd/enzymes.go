package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// enzymesCmd is for listing the enzymes available for digestion and
// planning. Useful for if the user doesn't know which enzymes are available
var enzymesCmd = &cobra.Command{
	Use:   "enzymes [name]",
	Short: "List or search the enzyme database",
	Long: `Lists the enzymes by name along with their recognition sequence in
marker notation: "^" is the top-strand cut and "_" the bottom-strand cut.

With an argument, shows enzymes whose names contain it (or are within a
small edit distance of it).`,
	Run: runEnzymes,
}

func init() {
	rootCmd.AddCommand(enzymesCmd)
}

func runEnzymes(cmd *cobra.Command, args []string) {
	db := enzymeDB()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)
	defer w.Flush()

	if len(args) < 1 {
		for _, name := range db.Names() {
			fmt.Fprintf(w, "%s\t%s\n", name, db.Site(name))
		}
		return
	}

	matches := db.Find(args[0])
	if len(matches) == 0 {
		fmt.Fprintf(w, "failed to find any enzymes for %s\n", args[0])
		return
	}
	for _, name := range matches {
		fmt.Fprintf(w, "%s\t%s\n", name, db.Site(name))
	}
}
