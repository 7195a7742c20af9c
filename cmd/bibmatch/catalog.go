package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibmatch/internal/openalex"
	"github.com/pdiddy/bibmatch/internal/secrets"
	"github.com/pdiddy/bibmatch/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "bibmatch/0.1"
)

// addCatalogFlags registers the OpenAlex client flags shared by every
// subcommand that talks to the catalog.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().String("email", "", "email for OpenAlex polite pool (default: openalex-email secret)")
	cmd.Flags().Int("page-size", 0, "works requested per title search (default 25)")
	cmd.Flags().Float64("rate", 0, "maximum catalog requests per second (default 5)")
	cmd.Flags().Int("retries", 0, "retry attempts on transient HTTP errors (default 5)")
}

// catalogConfig builds the client configuration from flags, the viper
// config file, and the secrets directory, in that order of precedence.
func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("catalog.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = viper.GetString("catalog.email")
	}
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize == 0 {
		pageSize = viper.GetInt("catalog.page_size")
	}
	rps, _ := cmd.Flags().GetFloat64("rate")
	if rps == 0 {
		rps = viper.GetFloat64("catalog.requests_per_second")
	}
	retries, _ := cmd.Flags().GetInt("retries")
	if retries == 0 {
		retries = viper.GetInt("catalog.max_retries")
	}

	cfg := types.CatalogConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Email:             email,
		PageSize:          pageSize,
		RequestsPerSecond: rps,
		MaxRetries:        retries,
	}
	secrets.Apply(loadedSecrets, &cfg)
	return cfg
}

func newCatalogClient(cmd *cobra.Command) *openalex.Client {
	return openalex.NewClient(catalogConfig(cmd))
}
