package selector

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abik/internal/discovery"
	"abik/internal/domain"
	"abik/internal/loop"
)

type prompt struct {
	title   string
	options []string
	reply   func(int)
}

// fakeChooser records prompts so the test can answer them
type fakeChooser struct {
	prompts chan prompt
}

func (f *fakeChooser) ChooseOne(title string, options []string, reply func(int)) {
	f.prompts <- prompt{title: title, options: options, reply: reply}
}

func setup(t *testing.T, dirs ...string) (*Selector, *fakeChooser, *loop.Pump) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll("/work/"+d, 0o755))
	}
	require.NoError(t, afero.WriteFile(fs, "/work/stray.img", []byte("x"), 0o644))

	l := loop.NewSerial()
	t.Cleanup(l.Close)
	ch := &fakeChooser{prompts: make(chan prompt, 1)}
	return New(discovery.NewLister(fs), l, ch), ch, l
}

func outcome(t *testing.T, c <-chan domain.SelectionOutcome) domain.SelectionOutcome {
	t.Helper()
	select {
	case o := <-c:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome delivered")
		return domain.SelectionOutcome{}
	}
}

func TestNoCandidates(t *testing.T) {
	s, ch, _ := setup(t)
	got := make(chan domain.SelectionOutcome, 1)

	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })

	o := outcome(t, got)
	assert.Equal(t, domain.NoCandidates, o.Kind)
	assert.Nil(t, o.Entry)
	assert.Empty(t, ch.prompts)
}

func TestSingleCandidateIsAutoSelected(t *testing.T) {
	s, ch, _ := setup(t, "boot")
	got := make(chan domain.SelectionOutcome, 1)

	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })

	o := outcome(t, got)
	assert.Equal(t, domain.AutoSelected, o.Kind)
	require.NotNil(t, o.Entry)
	assert.Equal(t, "boot", o.Entry.Name)
	assert.Empty(t, ch.prompts, "no prompt for a single candidate")
}

func TestManyCandidatesPromptAndPick(t *testing.T) {
	s, ch, _ := setup(t, "boot", "recovery", "vendor_boot")
	got := make(chan domain.SelectionOutcome, 1)

	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })

	p := <-ch.prompts
	assert.Equal(t, ChooseTitle, p.title)
	require.Len(t, p.options, 3)
	assert.ElementsMatch(t, []string{"boot", "recovery", "vendor_boot"}, p.options)

	p.reply(1)
	o := outcome(t, got)
	assert.Equal(t, domain.UserPicked, o.Kind)
	require.NotNil(t, o.Entry)
	assert.Equal(t, p.options[1], o.Entry.Name)
}

func TestConfirmWithNothingHighlighted(t *testing.T) {
	s, ch, _ := setup(t, "a", "b")
	got := make(chan domain.SelectionOutcome, 1)

	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })
	(<-ch.prompts).reply(-1)

	o := outcome(t, got)
	assert.Equal(t, domain.UserPicked, o.Kind)
	assert.Nil(t, o.Entry)
}

func TestDismissNeverResolves(t *testing.T) {
	s, ch, l := setup(t, "a", "b")
	got := make(chan domain.SelectionOutcome, 1)

	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })
	<-ch.prompts // dismissed: reply is dropped

	s.Wait()
	l.Close()
	assert.Empty(t, got)
}

func TestListingIsNotCached(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))
	l := loop.NewSerial()
	t.Cleanup(l.Close)
	s := New(discovery.NewLister(fs), l, &fakeChooser{prompts: make(chan prompt, 1)})

	got := make(chan domain.SelectionOutcome, 1)
	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })
	assert.Equal(t, domain.NoCandidates, outcome(t, got).Kind)

	require.NoError(t, fs.MkdirAll("/work/boot", 0o755))
	s.Select("/work", func(o domain.SelectionOutcome) { got <- o })
	assert.Equal(t, domain.AutoSelected, outcome(t, got).Kind)
}
