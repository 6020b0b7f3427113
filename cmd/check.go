package cmd

import (
	"fmt"
	"os"

	log "github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aylesm/federation/pkg/astparser"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:     "check",
	Short:   "check parses graphql query files and reports syntax errors",
	Example: "check starwars.query.graphql operations/*.graphql",
	RunE: func(cmd *cobra.Command, args []string) error {

		if len(args) == 0 {
			return fmt.Errorf("check: must provide at least 1 arg (fileName)")
		}

		l := logger()

		failed := 0
		for _, fileName := range args {
			data, err := os.ReadFile(fileName)
			if err != nil {
				return errors.Wrap(err, "read query file")
			}

			doc, err := astparser.ParseGraphqlDocumentBytes(data)
			if err != nil {
				failed++
				l.Error("invalid query document",
					log.String("file", fileName),
					log.Error(err),
				)
				continue
			}

			l.Debug("valid query document",
				log.String("file", fileName),
				log.Int("definitions", len(doc.Definitions)),
			)
		}

		if failed > 0 {
			return fmt.Errorf("check: %d of %d documents invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
