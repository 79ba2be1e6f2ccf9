// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a form snapshot into output. Every function here is a
// pure function of the snapshot: nothing when the form is idle, the error text
// when one is set, otherwise one entry per course in service order.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/pkg/types"
)

// Placeholder is the hint shown in an empty query input.
const Placeholder = "Ask about courses (e.g., 'Show me all graduate CSE courses with 3 credits')"

// Styles decorates text output. The zero value writes plain text.
type Styles struct {
	Error lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
}

// PlainStyles writes undecorated text.
func PlainStyles() Styles {
	return Styles{
		Error: lipgloss.NewStyle(),
		Title: lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
	}
}

// Text writes s as terminal text.
func Text(w io.Writer, s form.State, st Styles) {
	switch s.Phase() {
	case form.Idle:
		return
	case form.ErrorShown:
		fmt.Fprintln(w, st.Error.Render(s.Error()))
		return
	}

	for i, c := range s.Results() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeCourse(w, i+1, c, st)
	}
}

func writeCourse(w io.Writer, n int, c types.CourseRecord, st Styles) {
	fmt.Fprintf(w, "%d. %s\n", n, st.Title.Render(fmt.Sprintf("%s (%s)", c.Name, c.CatalogNumber)))
	field := func(label, value string) {
		fmt.Fprintf(w, "   %s %s\n", st.Label.Render(label+":"), value)
	}
	field("Description", c.Description)
	field("Department", c.Department)
	field("Level", c.Level)
	field("Credits", c.Credits)
	field("Schedule", Schedule(c))
	field("Facility", c.Facility)
	field("Prerequisites", c.Prerequisites)
	field("Grading Basis", c.GradingBasis)
	field("Academic Group", c.AcademicGroup)
	fmt.Fprintf(w, "   %s\n", st.Label.Render("Availability:"))
	for _, a := range c.Availability {
		fmt.Fprintf(w, "     - %s\n", AvailabilityLine(a))
	}
}

// Schedule formats meeting days and times as "days (start - end)".
func Schedule(c types.CourseRecord) string {
	return fmt.Sprintf("%s (%s - %s)", c.ScheduleDays, c.StartTime, c.EndTime)
}

// AvailabilityLine formats one availability row.
func AvailabilityLine(a types.AvailabilityEntry) string {
	return fmt.Sprintf("Term: %s, Seats Available: %d, Enrolled: %d, Capacity: %d",
		a.Term, a.Available, a.Enrolled, a.Capacity)
}

// Snapshot is the structured form of a rendered state, used by the JSON and
// YAML writers.
type Snapshot struct {
	Query   string               `json:"query" yaml:"query"`
	Phase   string               `json:"phase" yaml:"phase"`
	Error   string               `json:"error,omitempty" yaml:"error,omitempty"`
	Courses []types.CourseRecord `json:"courses" yaml:"courses"`
}

// NewSnapshot captures what s displays. Courses is empty whenever an error is
// shown.
func NewSnapshot(s form.State) Snapshot {
	snap := Snapshot{
		Query:   s.Query(),
		Phase:   s.Phase().String(),
		Courses: []types.CourseRecord{},
	}
	switch s.Phase() {
	case form.ErrorShown:
		snap.Error = s.Error()
	case form.ResultsShown:
		snap.Courses = s.Results()
	}
	return snap
}

// JSON writes s as indented JSON.
func JSON(w io.Writer, s form.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSnapshot(s))
}

// YAML writes s as a YAML document.
func YAML(w io.Writer, s form.State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSnapshot(s)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// ParseFormat checks a user-supplied format name. Empty selects text.
func ParseFormat(name string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(name); f {
	case types.OutputText, types.OutputJSON, types.OutputYAML:
		return f, nil
	case "":
		return types.OutputText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", name)
}

// Write dispatches on format.
func Write(w io.Writer, s form.State, format types.OutputFormat) error {
	switch format {
	case types.OutputJSON:
		return JSON(w, s)
	case types.OutputYAML:
		return YAML(w, s)
	case types.OutputText, "":
		Text(w, s, PlainStyles())
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
