package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local work cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many works and PDFs the cache holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		status, err := store.Status(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%d works cached, %d with PDFs\n", status.Works, status.PDFs)
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", "cache", "cache directory")
	cacheCmd.AddCommand(cacheStatusCmd)
	rootCmd.AddCommand(cacheCmd)
}
