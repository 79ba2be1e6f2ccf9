// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch submits a list of saved queries one after another and
// records what the form showed for each.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/internal/render"
)

// QueryFile is the on-disk list of queries to run.
//
//	queries:
//	  - Show me all graduate CSE courses with 3 credits
//	  - Which courses meet on Fridays in term 2247?
type QueryFile struct {
	Queries []string `yaml:"queries"`
}

// Report is what Run produces: one entry per query, in file order.
type Report struct {
	Entries []render.Snapshot `yaml:"entries"`
	Summary Summary           `yaml:"summary"`
}

// Summary counts entries by phase.
type Summary struct {
	Total     int       `yaml:"total"`
	Results   int       `yaml:"results"`
	Errors    int       `yaml:"errors"`
	Empty     int       `yaml:"empty"`
	Skipped   int       `yaml:"skipped"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ReadQueryFile loads a query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Run submits each query on a freshly mounted form and waits for its answer
// before moving on. Empty queries are skipped because the form would refuse
// them. Progress lines go to w.
func Run(ctx context.Context, q form.Querier, opts form.Options, qf *QueryFile, w io.Writer) Report {
	var rep Report
	for i, text := range qf.Queries {
		if ctx.Err() != nil {
			break
		}
		text = strings.TrimRight(text, "\n")
		if text == "" {
			rep.Summary.Skipped++
			fmt.Fprintf(w, "[%d/%d] skipped empty query\n", i+1, len(qf.Queries))
			continue
		}

		state := form.Submit(ctx, q, form.New(opts), text)
		snap := render.NewSnapshot(state)
		rep.Entries = append(rep.Entries, snap)

		switch state.Phase() {
		case form.ResultsShown:
			rep.Summary.Results++
			fmt.Fprintf(w, "[%d/%d] %q: %d course(s)\n", i+1, len(qf.Queries), text, len(snap.Courses))
		case form.ErrorShown:
			rep.Summary.Errors++
			fmt.Fprintf(w, "[%d/%d] %q: %s\n", i+1, len(qf.Queries), text, snap.Error)
		default:
			rep.Summary.Empty++
			fmt.Fprintf(w, "[%d/%d] %q: no courses\n", i+1, len(qf.Queries), text)
		}
	}
	rep.Summary.Total = len(rep.Entries)
	rep.Summary.Timestamp = time.Now()
	return rep
}

// WriteReport encodes rep as YAML to w.
func WriteReport(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&rep); err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return enc.Close()
}

// WriteReportFile saves rep to path.
func WriteReportFile(path string, rep Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := WriteReport(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
