// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/pkg/types"
)

type stubQuerier struct {
	resp  types.QueryResponse
	err   error
	calls []string
}

func (q *stubQuerier) Query(_ context.Context, text string) (types.QueryResponse, error) {
	q.calls = append(q.calls, text)
	return q.resp, q.err
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func enter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestTypingUpdatesQueryOnEveryKeystroke(t *testing.T) {
	m := New(context.Background(), &stubQuerier{}, form.Options{})
	m = typeText(t, m, "cs")
	assert.Equal(t, "cs", m.State().Query())
	m = typeText(t, m, "e")
	assert.Equal(t, "cse", m.State().Query())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "cs", m.State().Query())
}

func TestEnterWithEmptyQueryDoesNothing(t *testing.T) {
	q := &stubQuerier{}
	m := New(context.Background(), q, form.Options{})
	assert.Contains(t, m.View(), "[ Search ]")

	m, cmd := enter(t, m)
	assert.Nil(t, cmd)
	assert.Equal(t, uint64(0), m.State().Generation())
	assert.Empty(t, q.calls)
}

func TestSubmitRendersCourses(t *testing.T) {
	q := &stubQuerier{resp: types.QueryResponse{Courses: []types.CourseRecord{
		{Name: "Image Processing and Analysis", CatalogNumber: "507",
			Availability: []types.AvailabilityEntry{{Term: "2247", Available: 5, Enrolled: 40, Capacity: 45}}},
		{Name: "Statistical Machine Learning", CatalogNumber: "575"},
	}}}
	m := New(context.Background(), q, form.Options{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
	m = typeText(t, m, "graduate cse")

	m, cmd := enter(t, m)
	require.NotNil(t, cmd)
	assert.Equal(t, uint64(1), m.State().Generation())

	done, ok := cmd().(form.Completed)
	require.True(t, ok)
	assert.Equal(t, []string{"graduate cse"}, q.calls)

	m, _ = send(t, m, done)
	assert.Equal(t, form.ResultsShown, m.State().Phase())

	view := m.View()
	assert.Contains(t, view, "Image Processing and Analysis (507)")
	assert.Contains(t, view, "Statistical Machine Learning (575)")
	assert.Contains(t, view, "Term: 2247, Seats Available: 5, Enrolled: 40, Capacity: 45")
}

func TestSubmitTransportFailureShowsGenericMessage(t *testing.T) {
	q := &stubQuerier{err: errors.New("dial tcp: connection refused")}
	m := New(context.Background(), q, form.Options{})
	m = typeText(t, m, "cse")

	m, cmd := enter(t, m)
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, form.GenericErrorMessage, m.State().Error())
	assert.Contains(t, m.View(), form.GenericErrorMessage)
	assert.NotContains(t, m.View(), "connection refused")
}

func TestResubmitClearsBeforeAnswer(t *testing.T) {
	q := &stubQuerier{resp: types.QueryResponse{Error: "no matches"}}
	m := New(context.Background(), q, form.Options{})
	m = typeText(t, m, "x")

	m, cmd := enter(t, m)
	m, _ = send(t, m, cmd())
	require.Equal(t, "no matches", m.State().Error())

	m, cmd = enter(t, m)
	require.NotNil(t, cmd)
	assert.Empty(t, m.State().Error())
	assert.NotContains(t, m.View(), "no matches")
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := New(context.Background(), &stubQuerier{}, form.Options{})
		_, cmd := send(t, m, tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	}
}
