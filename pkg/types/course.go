// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures exchanged with the course query
// service and shared by the form, renderers, and command surfaces.
package types

// AvailabilityEntry is the seat count for one academic term. The service is
// trusted: Available is not checked against Capacity minus Enrolled.
type AvailabilityEntry struct {
	// Term is the academic term code (e.g. "2247" for Fall 2024).
	Term string `json:"term" yaml:"term"`

	Available int `json:"available" yaml:"available"`
	Enrolled  int `json:"enrolled" yaml:"enrolled"`
	Capacity  int `json:"capacity" yaml:"capacity"`
}

// CourseRecord is one course as returned by the query service.
type CourseRecord struct {
	Name          string `json:"course_name" yaml:"course_name"`
	CatalogNumber string `json:"catalog_number" yaml:"catalog_number"`
	Description   string `json:"description" yaml:"description"`
	Department    string `json:"department" yaml:"department"`
	Level         string `json:"course_level" yaml:"course_level"`

	// Credits is sent as a "min-max" range string (e.g. "3-3").
	Credits string `json:"credits" yaml:"credits"`

	ScheduleDays  string `json:"schedule_days" yaml:"schedule_days"`
	StartTime     string `json:"start_time" yaml:"start_time"`
	EndTime       string `json:"end_time" yaml:"end_time"`
	Facility      string `json:"facility" yaml:"facility"`
	Prerequisites string `json:"prerequisites" yaml:"prerequisites"`
	GradingBasis  string `json:"grading_basis" yaml:"grading_basis"`
	AcademicGroup string `json:"academic_group" yaml:"academic_group"`

	// Term is the first availability term, duplicated by the service for
	// convenience. Empty when the service omits it.
	Term string `json:"term,omitempty" yaml:"term,omitempty"`

	// Availability lists per-term seat counts in service order.
	Availability []AvailabilityEntry `json:"availability" yaml:"availability"`
}

// QueryRequest is the body posted to the query service. It carries exactly
// one field.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the body returned by the query service. Both fields are
// optional; a non-empty Error takes precedence over Courses.
type QueryResponse struct {
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Courses []CourseRecord `json:"courses,omitempty" yaml:"courses,omitempty"`
}
