package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aylesm/federation/pkg/astparser"
	"github.com/aylesm/federation/pkg/astprinter"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "fmt reformats graphql documents",
}

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:     "query",
	Short:   "query formats a graphql query file to std out",
	Example: "fmt query starwars.query.graphql > formatted.graphql",
	RunE: func(cmd *cobra.Command, args []string) error {

		if len(args) != 1 {
			return fmt.Errorf("query: must provide 1 arg (fileName)")
		}

		fileName := args[0]

		data, err := os.ReadFile(fileName)
		if err != nil {
			return errors.Wrap(err, "read query file")
		}

		doc, err := astparser.ParseGraphqlDocumentBytes(data)
		if err != nil {
			return errors.Wrapf(err, "parse %s", fileName)
		}

		return astprinter.Print(doc, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.AddCommand(queryCmd)
}
