package kong

import (
	"context"
	"io"

	"github.com/SACCSF/linkedin"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Kind   linkedin.Kind

	Source    linkedin.SnapshotSource
	Extractor linkedin.FieldExtractor
	Hasher    linkedin.ContentHasher
	Validator linkedin.RecordValidator
	Schema    linkedin.DocumentValidator
	Store     linkedin.ResultStore

	// History is nil unless a history database was requested.
	History linkedin.HistoryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir       string `arg:"" help:"Folder of saved HTML snapshots (searched recursively)"`
	Output    string `short:"o" default:"${output}" env:"LINKEDIN_OUTPUT" help:"Output JSON file"`
	Append    bool   `short:"a" help:"Merge into the existing output instead of replacing it"`
	Policy    string `short:"p" enum:"last,first,fill" default:"last" help:"Merge policy for entities found more than once (last, first, fill)"`
	Selectors string `short:"s" env:"LINKEDIN_SELECTORS" help:"YAML file overriding the built-in selectors"`
	Workers   int    `short:"w" default:"1" help:"Number of snapshots parsed in parallel"`
	History   string `env:"LINKEDIN_HISTORY" help:"SQLite database recording every run"`
	Verbose   bool   `short:"v" help:"Log every step to stderr"`
}
