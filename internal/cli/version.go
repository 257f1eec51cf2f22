package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paisaledger/statement-extractor/internal/api"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("statement-extractor v%s\n", api.Version)
	},
}
