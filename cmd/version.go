package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosfrc/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gosfrc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("SFRC Residual Flexural Strength Tool (fR,1, fR,3)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
