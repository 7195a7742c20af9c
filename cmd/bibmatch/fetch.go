package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibmatch/internal/reconcile"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [bib-path]",
	Short: "Download catalog records for matched entries",
	Long: `Fetch reads the reconciled "-oa.bib" files under bib-path and downloads the
full OpenAlex record for every matched entry as a JSON document. Output
mirrors the bibliography directory layout under --out. Records already on
disk are skipped unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("out", "works", "output directory for work JSON documents")
	fetchCmd.Flags().Bool("force", false, "refetch records that already exist on disk")
	addCatalogFlags(fetchCmd)

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	fetcher := reconcile.NewFetcher(newCatalogClient(cmd), force, os.Stdout)
	_, err := fetcher.FetchPath(cmd.Context(), args[0], outDir)
	return err
}
