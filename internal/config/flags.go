package config

import (
	"flag"
	"os"
)

// parses CLI flags for the import subcommand
func ParseImportFlags() Flags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("import", flag.ExitOnError)
	path := fs.String("path", "./content/seed.yaml", "path to content seed YAML file")
	clearFlag := fs.Bool("clear", false, "delete existing content before importing")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}

// parses CLI flags for the embed subcommand
func ParseEmbedFlags() EmbedFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	batch := fs.Int("batch", 50, "number of items embedded per API call")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	if *batch <= 0 {
		*batch = 50
	}

	return EmbedFlags{BatchSize: *batch}
}

// returns default flags for content import
func DefaultImportFlags() Flags {
	return Flags{Path: "./content/seed.yaml", Clear: false}
}
