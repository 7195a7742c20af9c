package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibmatch/internal/bibtex"
	"github.com/pdiddy/bibmatch/internal/cache"
	"github.com/pdiddy/bibmatch/internal/reconcile"
	"github.com/pdiddy/bibmatch/pkg/types"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Fill the local cache with catalog records and PDFs",
}

var populateWorksCmd = &cobra.Command{
	Use:   "works [bib-path]",
	Short: "Batch-fetch catalog records for every matched entry into the cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runPopulateWorks,
}

var populatePDFsCmd = &cobra.Command{
	Use:   "pdfs",
	Short: "Download open-access PDFs for cached works",
	RunE:  runPopulatePDFs,
}

func init() {
	populateCmd.PersistentFlags().String("cache-dir", "cache", "cache directory")
	populateCmd.PersistentFlags().Bool("force", false, "refetch works already in the cache")
	addCatalogFlags(populateWorksCmd)

	populateCmd.AddCommand(populateWorksCmd)
	populateCmd.AddCommand(populatePDFsCmd)
	rootCmd.AddCommand(populateCmd)
}

func openStore(cmd *cobra.Command) (*cache.Store, error) {
	dir, _ := cmd.Flags().GetString("cache-dir")
	if v := viper.GetString("cache.dir"); dir == "cache" && v != "" {
		dir = v
	}
	return cache.Open(types.CacheConfig{Dir: dir})
}

func runPopulateWorks(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	files, err := bibtex.FindFiles(args[0], bibtex.ModeProcessed)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, file := range files {
		db, err := bibtex.Load(file)
		if err != nil {
			return err
		}
		for _, id := range reconcile.CollectIDs(db) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	force, _ := cmd.Flags().GetBool("force")
	populator := cache.NewPopulator(store, newCatalogClient(cmd), nil, force, os.Stdout)
	_, err = populator.PopulateWorks(cmd.Context(), ids)
	return err
}

func runPopulatePDFs(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	httpClient := &http.Client{Timeout: defaultTimeout}
	populator := cache.NewPopulator(store, nil, httpClient, false, os.Stdout)
	_, err = populator.PopulatePDFs(cmd.Context())
	return err
}
