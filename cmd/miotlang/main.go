// miotlang - MIoT specification translation generator
//
// miotlang converts MIoT device specification instance documents into flat
// translation key files for home automation integrations. It runs either as
// a one-shot CLI (generate a single model's translations) or as a long-lived
// service exposing an HTTP API and an MQTT request listener.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/migrations"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "miotlang",
		Short: "MIoT specification translation generator",
		Long: `miotlang converts MIoT device specification instance documents into
flat translation key files: {urn: {lang: {key: description}}}.

Specifications are fetched from a miot-spec registry (or read from local
files), flattened into stable dotted keys for services, properties,
value-list entries, events and actions, and written as <urn>.json.
Generated documents are also recorded in a local SQLite catalog.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"Config file path (YAML)")

	cmd.AddCommand(generateCmd(&configPath))
	cmd.AddCommand(serveCmd(&configPath))
	cmd.AddCommand(hashPasswordCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("miotlang version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return cmd
}
