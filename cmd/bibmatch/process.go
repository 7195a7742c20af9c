package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibmatch/internal/match"
	"github.com/pdiddy/bibmatch/internal/reconcile"
	"github.com/pdiddy/bibmatch/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [path]",
	Short: "Match bibliography entries to OpenAlex works",
	Long: `Process loads each BibTeX file under path (a file or a directory walked
recursively, oldest year first), matches entries to OpenAlex works by fuzzy
title and author comparison, and writes the results to "-oa.bib" siblings.

High-confidence matches are accepted automatically. With --interactive,
lower-confidence candidates are offered for confirmation one at a time.
Files whose output already exists are skipped unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().Bool("interactive", false, "confirm low-confidence matches on the terminal")
	processCmd.Flags().Bool("force", false, "reprocess files whose -oa.bib output already exists")
	processCmd.Flags().String("report", "", "write a YAML run report to this path")
	processCmd.Flags().Int("title-high", 0, "minimum title score for automatic acceptance (default 90)")
	processCmd.Flags().Int("title-low", 0, "minimum title score for a candidate to be considered (default 50)")
	processCmd.Flags().Int("author-threshold", 0, "minimum author score for automatic acceptance (default 80)")
	processCmd.Flags().Int("max-prompts", 0, "candidates offered per entry in interactive mode (default 5)")
	addCatalogFlags(processCmd)

	rootCmd.AddCommand(processCmd)
}

func matchConfig(cmd *cobra.Command) types.MatchConfig {
	cfg := types.DefaultMatchConfig()
	if v, _ := cmd.Flags().GetInt("title-high"); v > 0 {
		cfg.TitleHigh = v
	} else if v := viper.GetInt("match.title_high"); v > 0 {
		cfg.TitleHigh = v
	}
	if v, _ := cmd.Flags().GetInt("title-low"); v > 0 {
		cfg.TitleLow = v
	} else if v := viper.GetInt("match.title_low"); v > 0 {
		cfg.TitleLow = v
	}
	if v, _ := cmd.Flags().GetInt("author-threshold"); v > 0 {
		cfg.AuthorThreshold = v
	} else if v := viper.GetInt("match.author_threshold"); v > 0 {
		cfg.AuthorThreshold = v
	}
	if v, _ := cmd.Flags().GetInt("max-prompts"); v > 0 {
		cfg.MaxPrompts = v
	} else if v := viper.GetInt("match.max_prompts"); v > 0 {
		cfg.MaxPrompts = v
	}
	return cfg
}

func runProcess(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	force, _ := cmd.Flags().GetBool("force")
	reportPath, _ := cmd.Flags().GetString("report")

	procCfg := types.ProcessConfig{
		Interactive: interactive,
		Force:       force,
		ReportPath:  reportPath,
	}

	var prompter match.Prompter
	if interactive {
		prompter = &reconcile.TerminalPrompter{In: os.Stdin, Out: os.Stdout}
	}

	engine := match.NewEngine(
		newCatalogClient(cmd),
		prompter,
		match.NewLookupCache(),
		matchConfig(cmd),
		os.Stdout,
	)

	started := time.Now()
	processor := reconcile.NewProcessor(engine, procCfg, os.Stdout)
	result, err := processor.ProcessPath(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if reportPath != "" {
		report := reconcile.RunReport{
			Path:     args[0],
			Started:  started,
			Finished: time.Now(),
			Result:   result,
		}
		if err := reconcile.WriteReport(reportPath, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote report to %s\n", reportPath)
	}
	return nil
}
