package kong

import (
	"fmt"
	"time"

	"github.com/SACCSF/linkedin"
	"github.com/SACCSF/linkedin/extract"
)

// ExtractCmd turns a folder of snapshots into one JSON file.
type ExtractCmd struct {
	Dir     string
	Output  string
	Append  bool
	Policy  linkedin.MergePolicy
	Workers int
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	switch deps.Kind {
	case linkedin.KindCompany:
		return runPipeline(c, deps, linkedin.NormalizeCompany)
	case linkedin.KindPerson:
		return runPipeline(c, deps, linkedin.NormalizePerson)
	default:
		return linkedin.Errorf(linkedin.EINVALID, "unknown record kind %q", deps.Kind)
	}
}

func runPipeline[T linkedin.Record[T]](c *ExtractCmd, deps *Dependencies, normalize func(*linkedin.RawRecord) T) error {
	p := &extract.Pipeline[T]{
		Kind:        deps.Kind,
		Source:      deps.Source,
		Extractor:   deps.Extractor,
		Normalize:   normalize,
		Store:       deps.Store,
		Hasher:      deps.Hasher,
		Validator:   deps.Validator,
		Schema:      deps.Schema,
		History:     deps.History,
		Policy:      c.Policy,
		Append:      c.Append,
		Concurrency: c.Workers,
		Output:      c.Output,
	}

	progress := func(ev linkedin.Progress) {
		if ev.Status == linkedin.StatusUnreadable {
			fmt.Fprintf(deps.Stderr, "warn %s: %s\n", ev.Path, extract.ErrorText(ev.Error))
			return
		}
		fmt.Fprintf(deps.Stdout, "Processing file: %s\n", ev.Path)
		if ev.Error != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", ev.Path, extract.ErrorText(ev.Error))
		}
		if ev.Dropped > 0 {
			fmt.Fprintf(deps.Stderr, "warn %s: dropped %d %s entries with too few values\n", ev.Path, ev.Dropped, deps.Kind)
		}
	}

	report, err := p.Run(deps.Ctx, c.Dir, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d %s records to %s (%d files, %s, %d skipped, %d duplicates)\n",
		report.Entities, deps.Kind, c.Output, report.Files, FormatSize(report.Bytes), report.Skipped, report.Duplicates)
	if report.Unreadable > 0 {
		fmt.Fprintf(deps.Stdout, "%d folders could not be read\n", report.Unreadable)
	}
	if report.RunID != "" {
		fmt.Fprintf(deps.Stdout, "Run %s recorded\n", report.RunID)
	}
	fmt.Fprintf(deps.Stdout, "finished in %s\n", report.Duration.Round(time.Millisecond))
	return nil
}
