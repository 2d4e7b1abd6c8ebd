// Package extract orchestrates one extraction run: it enumerates snapshots,
// extracts and normalizes them on a worker pool, merges the records in
// enumeration order and commits the finalized document.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SACCSF/linkedin"
	"golang.org/x/sync/errgroup"
)

// Pipeline turns a folder of snapshots into one JSON document of records
// of type T. Source, Extractor, Normalize and Store are required; the other
// services are optional.
type Pipeline[T linkedin.Record[T]] struct {
	Kind      linkedin.Kind
	Source    linkedin.SnapshotSource
	Extractor linkedin.FieldExtractor
	Normalize func(*linkedin.RawRecord) T
	Store     linkedin.ResultStore

	// Hasher skips snapshots whose content was already seen in this run.
	Hasher linkedin.ContentHasher

	// Validator rejects records breaking field constraints.
	Validator linkedin.RecordValidator

	// Schema checks the finalized document before it is saved.
	Schema linkedin.DocumentValidator

	// History records the run and every per-snapshot outcome.
	History linkedin.HistoryService

	Policy linkedin.MergePolicy

	// Append starts from the committed document instead of an empty one.
	Append bool

	// Concurrency is the number of snapshots extracted in parallel.
	// Values below 1 mean 1. Merging is always sequential.
	Concurrency int

	// Output is recorded in the run history.
	Output string
}

// Report summarizes a run.
type Report struct {
	RunID      string
	Files      int
	Merged     int
	Skipped    int
	Duplicates int

	// Records is the number of records merged; a search page yields several.
	Records int

	// Dropped is the number of entities left out across all snapshots.
	Dropped int

	// Unreadable counts sub-folders that could not be listed.
	Unreadable int

	Entities int
	Bytes    int
	Duration time.Duration
}

// outcome holds the result of processing a single snapshot.
type outcome[T any] struct {
	path      string
	hash      string
	size      int
	recs      []T
	keys      []string
	dropped   int
	duplicate bool
	folder    bool
	err       error
	fatal     error
}

// Run processes every snapshot below dir and commits the resulting document.
// Per-snapshot failures are reported through progress and never abort the
// run. Run fails if dir is invalid, if snapshots were found but none could
// be merged, or if the document cannot be written; in those cases nothing
// is committed.
func (p *Pipeline[T]) Run(ctx context.Context, dir string, progress linkedin.ProgressFunc) (*Report, error) {
	begin := time.Now()
	report := &Report{}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seq, err := p.Source.Snapshots(ctx, dir)
	if err != nil {
		return nil, err
	}

	coll, err := p.initialCollection(ctx)
	if err != nil {
		return nil, err
	}

	if p.History != nil {
		run := &linkedin.Run{Kind: p.Kind, InputDir: dir, Output: p.Output}
		if err := p.History.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("create run: %w", err)
		}
		report.RunID = run.ID
	}

	workers := max(p.Concurrency, 1)
	var g errgroup.Group
	g.SetLimit(workers)

	// Each snapshot gets a slot in enumeration order; workers fill slots
	// in any order and the merge loop below drains them in sequence.
	slots := make(chan chan outcome[T], workers)
	go func() {
		defer close(slots)
		seen := make(map[string]string)
		for snap, readErr := range seq {
			slot := make(chan outcome[T], 1)
			select {
			case slots <- slot:
			case <-ctx.Done():
				return
			}

			if snap == nil {
				slot <- outcome[T]{fatal: readErr}
				return
			}
			if snap.Folder {
				slot <- outcome[T]{path: snap.Path, folder: true, err: readErr}
				continue
			}
			var hash string
			if readErr == nil && p.Hasher != nil {
				hash = p.Hasher.Hash(snap.Content)
				if first, ok := seen[hash]; ok {
					slot <- outcome[T]{
						path:      snap.Path,
						hash:      hash,
						size:      len(snap.Content),
						duplicate: true,
						err:       linkedin.Errorf(linkedin.EINVALID, "same content as %s", first),
					}
					continue
				}
				seen[hash] = snap.Path
			}

			g.Go(func() error {
				slot <- p.process(snap, hash, readErr)
				return nil
			})
		}
	}()

	var fatal error
	for slot := range slots {
		o := <-slot
		if fatal != nil {
			continue
		}
		if o.fatal != nil {
			fatal = o.fatal
			cancel()
			continue
		}
		if o.folder {
			report.Unreadable++
			if progress != nil {
				progress(linkedin.Progress{
					Path:      o.path,
					Status:    linkedin.StatusUnreadable,
					Completed: report.Files,
					Error:     o.err,
				})
			}
			continue
		}

		report.Files++
		report.Bytes += o.size
		report.Dropped += o.dropped
		status, keys, err := p.merge(coll, o)
		switch status {
		case linkedin.StatusMerged:
			report.Merged++
			report.Records += len(keys)
		case linkedin.StatusDuplicate:
			report.Duplicates++
		default:
			report.Skipped++
		}

		if p.History != nil {
			if herr := p.recordExtraction(ctx, report.RunID, o, status, keys, err); herr != nil {
				fatal = herr
				cancel()
				continue
			}
		}
		if progress != nil {
			ev := linkedin.Progress{
				Path:      o.path,
				Keys:      keys,
				Status:    status,
				Completed: report.Files,
				Dropped:   o.dropped,
				Error:     err,
			}
			if len(keys) > 0 {
				ev.Key = keys[0]
			}
			progress(ev)
		}
	}
	_ = g.Wait()

	if fatal == nil {
		fatal = ctx.Err()
	}
	if fatal == nil && report.Files > 0 && report.Merged == 0 {
		fatal = linkedin.Errorf(linkedin.EINVALID, "none of the %d snapshots in %s could be extracted", report.Files, dir)
	}
	if fatal == nil {
		fatal = p.commit(ctx, coll)
	}

	report.Entities = coll.Len()
	report.Duration = time.Since(begin)

	if p.History != nil && report.RunID != "" {
		// The run is closed even when it failed so its counters are kept.
		_, herr := p.History.FinishRun(context.WithoutCancel(ctx), report.RunID, linkedin.RunUpdate{
			Files:     report.Files,
			Processed: report.Merged,
			Skipped:   report.Skipped + report.Duplicates,
			Entities:  report.Entities,
		})
		if fatal == nil && herr != nil {
			fatal = fmt.Errorf("finish run: %w", herr)
		}
	}

	if fatal != nil {
		return report, fatal
	}
	return report, nil
}

func (p *Pipeline[T]) initialCollection(ctx context.Context) (*linkedin.Collection[T], error) {
	coll := linkedin.NewCollection[T](p.Policy)
	if !p.Append {
		return coll, nil
	}

	data, err := p.Store.Load(ctx)
	if linkedin.ErrorCode(err) == linkedin.ENOTFOUND {
		return coll, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load existing output: %w", err)
	}
	if err := coll.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return coll, nil
}

// process extracts and normalizes one snapshot. It only reads shared,
// immutable state and is safe to run concurrently.
func (p *Pipeline[T]) process(snap *linkedin.Snapshot, hash string, readErr error) outcome[T] {
	o := outcome[T]{path: snap.Path, hash: hash, size: len(snap.Content)}
	if readErr != nil {
		o.err = readErr
		return o
	}

	res, err := p.Extractor.ExtractAll(snap.Content)
	if err != nil {
		o.err = err
		return o
	}
	if res.Kind != linkedin.KindUnknown && res.Kind != p.Kind {
		o.err = linkedin.Errorf(linkedin.EINVALID, "page shows a %s profile, expected %s", res.Kind, p.Kind)
		return o
	}

	o.dropped = res.Dropped
	var first error
	for _, raw := range res.Records {
		rec := p.Normalize(raw)
		key := linkedin.EntityKey(rec.EntityName())
		var verr error
		if key == "" {
			verr = linkedin.Errorf(linkedin.EINVALID, "no %s name found", p.Kind)
		} else if p.Validator != nil {
			verr = p.Validator.ValidateRecord(rec)
		}
		if verr != nil {
			if first == nil {
				first = verr
			}
			o.dropped++
			continue
		}
		o.recs = append(o.recs, rec)
		o.keys = append(o.keys, key)
	}
	if len(o.recs) == 0 {
		// The page is skipped as a whole; only extractor losses are dropped.
		o.dropped = res.Dropped
		o.err = first
		if o.err == nil {
			o.err = linkedin.Errorf(linkedin.EINVALID, "no %s name found", p.Kind)
		}
	}
	return o
}

// merge applies one outcome to the collection and returns the merged keys.
func (p *Pipeline[T]) merge(coll *linkedin.Collection[T], o outcome[T]) (linkedin.ProgressStatus, []string, error) {
	if o.duplicate {
		return linkedin.StatusDuplicate, nil, o.err
	}
	if o.err != nil {
		return linkedin.StatusSkipped, nil, o.err
	}
	var keys []string
	var first error
	for i, rec := range o.recs {
		if _, err := coll.Merge(o.keys[i], rec); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		keys = append(keys, o.keys[i])
	}
	if len(keys) == 0 {
		return linkedin.StatusSkipped, nil, first
	}
	return linkedin.StatusMerged, keys, nil
}

// recordExtraction writes one history row per merged record, or a single
// row for a snapshot that was not merged.
func (p *Pipeline[T]) recordExtraction(ctx context.Context, runID string, o outcome[T], status linkedin.ProgressStatus, keys []string, err error) error {
	if status != linkedin.StatusMerged {
		e := &linkedin.Extraction{
			RunID:       runID,
			SourcePath:  o.path,
			ContentHash: o.hash,
			Status:      status,
		}
		if err != nil {
			e.Message = ErrorText(err)
		}
		if herr := p.History.CreateExtraction(ctx, e); herr != nil {
			return fmt.Errorf("record extraction: %w", herr)
		}
		return nil
	}

	for i, key := range o.keys {
		if !slices.Contains(keys, key) {
			continue
		}
		rec, merr := json.Marshal(o.recs[i])
		if merr != nil {
			return fmt.Errorf("encode record: %w", merr)
		}
		e := &linkedin.Extraction{
			RunID:       runID,
			SourcePath:  o.path,
			ContentHash: o.hash,
			Key:         key,
			Status:      status,
			Record:      rec,
		}
		if herr := p.History.CreateExtraction(ctx, e); herr != nil {
			return fmt.Errorf("record extraction: %w", herr)
		}
	}
	return nil
}

// commit finalizes the collection and writes it atomically.
func (p *Pipeline[T]) commit(ctx context.Context, coll *linkedin.Collection[T]) error {
	data, err := Finalize(coll)
	if err != nil {
		return err
	}
	if p.Schema != nil {
		if err := p.Schema.ValidateDocument(p.Kind, data); err != nil {
			return err
		}
	}

	if err := p.Store.Save(ctx, data); err != nil {
		_ = p.Store.Abort()
		return fmt.Errorf("save output: %w", err)
	}
	if err := p.Store.Commit(); err != nil {
		_ = p.Store.Abort()
		return fmt.Errorf("commit output: %w", err)
	}
	return nil
}

// Finalize serializes coll as an indented JSON object keyed by entity key,
// in insertion order, with a trailing newline.
func Finalize[T linkedin.Record[T]](coll *linkedin.Collection[T]) ([]byte, error) {
	compact, err := coll.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indent output: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ErrorText returns the message of an application error or the text of
// any other error.
func ErrorText(err error) string {
	var e *linkedin.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
