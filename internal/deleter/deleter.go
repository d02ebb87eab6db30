// Package deleter removes a user-chosen subset of the working directory's entries.
package deleter

import (
	"fmt"

	"abik/internal/discovery"
	"abik/internal/domain"
	"abik/internal/logger"
	"abik/internal/selection"
)

// Plan is the fixed list of entries eligible for one deletion run
type Plan struct {
	Root    string
	Entries []domain.Entry
}

// Names returns the entry names in plan order
func (p *Plan) Names() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Name
	}
	return names
}

// Progress is reported before an entry is removed
type Progress struct {
	Entry     domain.Entry
	Index     int // position in the plan
	Completed int // entries already handled in this run
	Total     int // entries selected for this run
}

type Failure struct {
	Entry domain.Entry
	Err   error
}

// Summary is the outcome of a deletion run. Deleted counts confirmed removals.
type Summary struct {
	Attempted int
	Deleted   int
	Failures  []Failure
}

// Deleter plans and executes batch deletions
type Deleter struct {
	lister *discovery.Lister
}

func New(lister *discovery.Lister) *Deleter {
	return &Deleter{lister: lister}
}

// Plan lists the immediate children of root. The result does not change if
// the filesystem changes afterwards.
func (d *Deleter) Plan(root string) (*Plan, error) {
	entries := d.lister.Children(root)
	if len(entries) == 0 {
		return nil, &domain.OpError{Op: "plan", Kind: domain.KindNoCandidates, Path: root, Err: domain.ErrNoCandidates}
	}
	return &Plan{Root: root, Entries: entries}, nil
}

// Execute walks the plan in order and removes every selected entry.
// progress, when set, is called synchronously before each removal.
// A failed removal is recorded and iteration continues.
func (d *Deleter) Execute(plan *Plan, sel *selection.Set, progress func(Progress)) Summary {
	var sum Summary
	total := sel.Count()

	for i, entry := range plan.Entries {
		if !sel.Has(i) {
			continue
		}
		if progress != nil {
			progress(Progress{Entry: entry, Index: i, Completed: sum.Attempted, Total: total})
		}

		sum.Attempted++
		if err := d.lister.RemoveAll(entry.Path); err != nil {
			logger.L().Warn("deleter.remove_failed", "path", entry.Path, "err", err)
			sum.Failures = append(sum.Failures, Failure{Entry: entry, Err: fmt.Errorf("remove %s: %w", entry.Name, err)})
			continue
		}
		sum.Deleted++
	}

	logger.L().Info("deleter.done", "root", plan.Root, "attempted", sum.Attempted, "deleted", sum.Deleted, "failed", len(sum.Failures))
	return sum
}
