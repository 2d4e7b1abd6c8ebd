// Package kong implements the command-line interface shared by the
// companies2json and persons2json programs.
package kong

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"

	"github.com/SACCSF/linkedin"
	"github.com/SACCSF/linkedin/fs"
	"github.com/SACCSF/linkedin/goquery"
	"github.com/SACCSF/linkedin/jsonschema"
	"github.com/SACCSF/linkedin/slog"
	"github.com/SACCSF/linkedin/sqlite"
	"github.com/SACCSF/linkedin/validator"
	"github.com/SACCSF/linkedin/xxhash"
	"github.com/SACCSF/linkedin/yaml"
	"github.com/alecthomas/kong"
)

// Main represents the program.
type Main struct {
	// Name is the program name shown in help output.
	Name string

	// Kind selects the pipeline: companies or persons.
	Kind linkedin.Kind

	// SQLite database used by the run history, when enabled.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main for the given kind.
func NewMain(name string, kind linkedin.Kind) *Main {
	return &Main{Name: name, Kind: kind}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name(m.Name),
		kong.Description(fmt.Sprintf("Extract %s records from saved LinkedIn pages into %s.", m.Kind, m.Kind.DefaultOutput())),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"output": m.Kind.DefaultOutput()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no input folder provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.Workers < 1 {
		return linkedin.Errorf(linkedin.EINVALID, "workers must be at least 1")
	}

	level := stdslog.LevelWarn
	if cli.Verbose {
		level = stdslog.LevelDebug
	}
	logger := stdslog.New(stdslog.NewTextHandler(stderr, &stdslog.HandlerOptions{Level: level}))

	table := goquery.DefaultTable(m.Kind)
	if cli.Selectors != "" {
		override, err := yaml.LoadTable(cli.Selectors, m.Kind)
		if err != nil {
			return err
		}
		table = table.Override(override)
	}
	extractor, err := goquery.NewExtractor(table)
	if err != nil {
		return err
	}

	schema, err := jsonschema.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to load output schema: %w", err)
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Kind:      m.Kind,
		Source:    slog.NewLoggingSource(fs.NewSource(), logger),
		Extractor: slog.NewLoggingExtractor(extractor, logger),
		Hasher:    xxhash.NewHasher(),
		Validator: validator.New(),
		Schema:    schema,
		Store:     slog.NewLoggingStore(fs.NewFileStore(cli.Output), logger),
	}

	if cli.History != "" {
		m.DB = sqlite.NewDB(cli.History)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LINKEDIN_HISTORY to use a different database path\n")
			return fmt.Errorf("failed to open history database at %q: %w", cli.History, err)
		}
		defer m.Close()
		deps.History = slog.NewLoggingHistory(sqlite.NewHistoryService(m.DB), logger)
	}

	cmd := &ExtractCmd{
		Dir:     cli.Dir,
		Output:  cli.Output,
		Append:  cli.Append,
		Policy:  linkedin.MergePolicy(cli.Policy),
		Workers: cli.Workers,
	}
	return cmd.Run(deps)
}
