// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form is the course query form: the query being typed, the results
// of the last answer, and the error shown in their place. State is an
// immutable snapshot advanced by Update; every surface (terminal UI, web page,
// one-shot command) drives the same cycle:
//
//	QueryChanged -> Submitted -> Execute -> Completed
//
// Completions apply in arrival order. Two overlapping submissions both
// resolve, and a slow older answer may overwrite a newer one unless the
// form was created with Options.DiscardStale.
package form

import (
	"context"

	"github.com/pdiddy/coursefinder/pkg/types"
)

// GenericErrorMessage replaces every failure to obtain a parsed response.
const GenericErrorMessage = "Failed to fetch results. Please try again."

// Phase is the visible condition of the form.
type Phase int

const (
	Idle Phase = iota
	ErrorShown
	ResultsShown
)

func (p Phase) String() string {
	switch p {
	case ErrorShown:
		return "error"
	case ResultsShown:
		return "results"
	default:
		return "idle"
	}
}

// Options adjusts how completions are applied.
type Options struct {
	// DiscardStale ignores a completion whose submission is older than the
	// most recent one.
	DiscardStale bool
}

// State is one snapshot of the form. The zero value is the freshly mounted
// form. Accessors return copies, so a snapshot never changes once taken.
type State struct {
	query      string
	results    []types.CourseRecord
	errMsg     string
	generation uint64
	opts       Options
}

// New returns an empty form.
func New(opts Options) State {
	return State{opts: opts}
}

// Query returns the current query text.
func (s State) Query() string { return s.query }

// Error returns the message in place of results, or "".
func (s State) Error() string { return s.errMsg }

// Generation counts accepted submissions.
func (s State) Generation() uint64 { return s.generation }

// Results returns a copy of the current result set in service order.
func (s State) Results() []types.CourseRecord {
	if len(s.results) == 0 {
		return nil
	}
	out := make([]types.CourseRecord, len(s.results))
	copy(out, s.results)
	return out
}

// CanSubmit reports whether a submission would be accepted. Non-empty text is
// the only requirement.
func (s State) CanSubmit() bool { return s.query != "" }

// Phase reports what a renderer shows. An error wins over results.
func (s State) Phase() Phase {
	switch {
	case s.errMsg != "":
		return ErrorShown
	case len(s.results) > 0:
		return ResultsShown
	default:
		return Idle
	}
}

// Msg is an event fed to Update.
type Msg interface {
	formMsg()
}

// QueryChanged carries the full text after an edit.
type QueryChanged struct {
	Text string
}

// Submitted is an explicit user submission.
type Submitted struct{}

// Completed is the outcome of one Execute. Err set means the request/response
// cycle failed; otherwise Response holds the decoded answer.
type Completed struct {
	Submission Submission
	Response   types.QueryResponse
	Err        error
}

func (QueryChanged) formMsg() {}
func (Submitted) formMsg()    {}
func (Completed) formMsg()    {}

// Submission is the request a Submitted message asks the caller to run.
type Submission struct {
	Generation uint64
	Query      string
}

// Update applies msg and returns the next snapshot. When msg starts a
// submission the returned Submission is non-nil and the caller must hand it
// to Execute.
func (s State) Update(msg Msg) (State, *Submission) {
	switch m := msg.(type) {
	case QueryChanged:
		s.query = m.Text
		return s, nil

	case Submitted:
		if !s.CanSubmit() {
			return s, nil
		}
		s.errMsg = ""
		s.results = nil
		s.generation++
		return s, &Submission{Generation: s.generation, Query: s.query}

	case Completed:
		if s.opts.DiscardStale && m.Submission.Generation < s.generation {
			return s, nil
		}
		return s.complete(m), nil
	}
	return s, nil
}

// complete writes only the field the outcome owns, so an answer arriving
// after a newer submission's answer lands next to it rather than erasing it.
func (s State) complete(m Completed) State {
	switch {
	case m.Err != nil:
		s.errMsg = GenericErrorMessage
	case m.Response.Error != "":
		s.errMsg = m.Response.Error
	default:
		s.results = make([]types.CourseRecord, len(m.Response.Courses))
		copy(s.results, m.Response.Courses)
	}
	return s
}

// Querier sends one query to the course query service.
type Querier interface {
	Query(ctx context.Context, text string) (types.QueryResponse, error)
}

// Execute runs sub against q exactly once.
func Execute(ctx context.Context, q Querier, sub Submission) Completed {
	resp, err := q.Query(ctx, sub.Query)
	return Completed{Submission: sub, Response: resp, Err: err}
}

// Submit is the synchronous path for surfaces without an event loop: it sets
// the query, submits, and applies the completion. When text is empty the
// returned state is unchanged apart from the query and no request is made.
func Submit(ctx context.Context, q Querier, s State, text string) State {
	s, _ = s.Update(QueryChanged{Text: text})
	s, sub := s.Update(Submitted{})
	if sub == nil {
		return s
	}
	s, _ = s.Update(Execute(ctx, q, *sub))
	return s
}
