package deleter

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abik/internal/discovery"
	"abik/internal/domain"
	"abik/internal/selection"
)

func seed(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/work/A/ramdisk", "/work/B", "/work/C/kernel"} {
		require.NoError(t, fs.MkdirAll(p, 0o755))
	}
	require.NoError(t, afero.WriteFile(fs, "/work/C/kernel/Image", []byte("k"), 0o644))
	return fs
}

func indexOf(t *testing.T, p *Plan, name string) int {
	t.Helper()
	for i, e := range p.Entries {
		if e.Name == name {
			return i
		}
	}
	t.Fatalf("%s not in plan", name)
	return -1
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

func TestPlanEmptyRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))
	d := New(discovery.NewLister(fs))

	p, err := d.Plan("/work")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
	assert.True(t, domain.IsKind(err, domain.KindNoCandidates))
}

func TestExecuteDeletesOnlySelectedInPlanOrder(t *testing.T) {
	fs := seed(t)
	d := New(discovery.NewLister(fs))

	plan, err := d.Plan("/work")
	require.NoError(t, err)
	require.Len(t, plan.Entries, 3)

	a, c := indexOf(t, plan, "A"), indexOf(t, plan, "C")
	sel := selection.Of(len(plan.Entries), a, c)

	var events []string
	sum := d.Execute(plan, sel, func(p Progress) {
		// the entry must still be there when its progress is reported
		assert.True(t, exists(t, fs, p.Entry.Path), "progress for %s came after deletion", p.Entry.Name)
		events = append(events, p.Entry.Name)
		assert.Equal(t, 2, p.Total)
	})

	assert.Equal(t, 2, sum.Deleted)
	assert.Equal(t, 2, sum.Attempted)
	assert.Empty(t, sum.Failures)

	var want []string
	for i, e := range plan.Entries {
		if i == a || i == c {
			want = append(want, e.Name)
		}
	}
	assert.Equal(t, want, events)

	assert.False(t, exists(t, fs, "/work/A"))
	assert.True(t, exists(t, fs, "/work/B"))
	assert.False(t, exists(t, fs, "/work/C"))
}

func TestPlanIsNotRelisted(t *testing.T) {
	fs := seed(t)
	d := New(discovery.NewLister(fs))

	plan, err := d.Plan("/work")
	require.NoError(t, err)

	require.NoError(t, fs.MkdirAll("/work/D", 0o755))
	sel := selection.New(len(plan.Entries))
	sel.ToggleAll()

	sum := d.Execute(plan, sel, nil)
	assert.Equal(t, 3, sum.Deleted)
	assert.True(t, exists(t, fs, "/work/D"), "entries created after planning are left alone")
}

func TestEmptySelectionDeletesNothing(t *testing.T) {
	fs := seed(t)
	d := New(discovery.NewLister(fs))

	plan, err := d.Plan("/work")
	require.NoError(t, err)

	called := false
	sum := d.Execute(plan, selection.New(len(plan.Entries)), func(Progress) { called = true })
	assert.False(t, called)
	assert.Equal(t, Summary{}, sum)
}

type failingFs struct {
	afero.Fs
	fail string
}

func (f failingFs) RemoveAll(path string) error {
	if path == f.fail {
		return &os.PathError{Op: "unlinkat", Path: path, Err: errors.New("permission denied")}
	}
	return f.Fs.RemoveAll(path)
}

func TestFailureIsRecordedAndIterationContinues(t *testing.T) {
	fs := failingFs{Fs: seed(t), fail: "/work/A"}
	d := New(discovery.NewLister(fs))

	plan, err := d.Plan("/work")
	require.NoError(t, err)
	sel := selection.New(len(plan.Entries))
	sel.ToggleAll()

	sum := d.Execute(plan, sel, nil)
	assert.Equal(t, 3, sum.Attempted)
	assert.Equal(t, 2, sum.Deleted)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, "A", sum.Failures[0].Entry.Name)
	assert.Contains(t, sum.Failures[0].Err.Error(), "permission denied")
}

func TestPlanNames(t *testing.T) {
	p := &Plan{Entries: []domain.Entry{{Name: "x"}, {Name: "y"}}}
	assert.Equal(t, []string{"x", "y"}, p.Names())
}
