package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abik/internal/domain"
	"abik/internal/selection"
)

func TestChooseOneNothingHighlighted(t *testing.T) {
	got := 99
	d := NewChooseOne("Select a project", []string{"a", "b", "c"}, func(i int) { got = i })

	d.Confirm()
	assert.Equal(t, -1, got)
}

func TestChooseOneMoveAndConfirm(t *testing.T) {
	got := -5
	d := NewChooseOne("t", []string{"a", "b", "c"}, func(i int) { got = i })

	d.Move(1) // first move lands on the first item
	assert.Equal(t, 0, d.Cursor)
	d.Move(5)
	assert.Equal(t, 2, d.Cursor)
	d.Move(-1)
	d.Confirm()
	assert.Equal(t, 1, got)
}

func TestChooseOneDismissNeverReplies(t *testing.T) {
	called := false
	d := NewChooseOne("t", []string{"a", "b"}, func(int) { called = true })

	d.Dismiss()
	d.Confirm()
	assert.False(t, called)
}

func TestChooseManyToggleAll(t *testing.T) {
	var got *selection.Set
	d := NewChooseMany("t", []string{"a", "b", "c"}, func(s *selection.Set) { got = s })

	d.Toggle()
	assert.Equal(t, []bool{true, false, false}, d.Checked())

	d.ToggleAll()
	assert.Equal(t, []bool{true, true, true}, d.Checked())
	d.ToggleAll()
	assert.Equal(t, []bool{false, false, false}, d.Checked())

	d.Move(1)
	d.Toggle()
	d.Move(1)
	d.Toggle()
	d.Confirm()
	require.NotNil(t, got)
	assert.Equal(t, []int{1, 2}, got.Indices())
}

func TestChooseManyDismissRepliesNil(t *testing.T) {
	called := false
	var got *selection.Set = selection.New(1)
	d := NewChooseMany("t", []string{"a"}, func(s *selection.Set) { called = true; got = s })

	d.Dismiss()
	assert.True(t, called)
	assert.Nil(t, got)
}

func TestStatusSequence(t *testing.T) {
	s := NewAppState("/w", true)

	first := s.SetStatus(domain.BusyAdvisory())
	second := s.SetStatus(domain.Advisory{Kind: domain.AdviseDone, Message: "ok"})

	s.ClearStatus(first)
	assert.Equal(t, "ok", s.Status.Message, "an old timer must not clear a newer message")
	s.ClearStatus(second)
	assert.Empty(t, s.Status.Message)
}
