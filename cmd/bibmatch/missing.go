package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibmatch/internal/reconcile"
)

var missingCmd = &cobra.Command{
	Use:   "missing [bib-path]",
	Short: "List reconciled entries still without an OpenAlex ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		missing, err := reconcile.ListMissing(args[0])
		if err != nil {
			return err
		}
		reconcile.PrintMissing(os.Stdout, missing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
}
