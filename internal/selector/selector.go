// Package selector resolves which project directory an operation should use.
package selector

import (
	"github.com/sourcegraph/conc"

	"abik/internal/discovery"
	"abik/internal/domain"
	"abik/internal/logger"
	"abik/internal/loop"
)

// ChooseTitle is the prompt shown when several projects exist
const ChooseTitle = "Select a project"

// Chooser presents a single-choice prompt. It is called on the interaction
// loop. reply receives the confirmed index, or -1 when the user confirmed
// with nothing highlighted. A dismissed prompt never calls reply.
type Chooser interface {
	ChooseOne(title string, options []string, reply func(int))
}

// Selector lists candidate projects and resolves one outcome per call
type Selector struct {
	lister  *discovery.Lister
	loop    loop.Loop
	chooser Chooser
	wg      conc.WaitGroup
}

func New(lister *discovery.Lister, l loop.Loop, chooser Chooser) *Selector {
	return &Selector{lister: lister, loop: l, chooser: chooser}
}

// Select lists the sub-directories of root in the background and delivers
// the outcome to done on the loop. done is called at most once, and never
// when the user dismisses the prompt.
func (s *Selector) Select(root string, done func(domain.SelectionOutcome)) {
	s.wg.Go(func() {
		dirs := s.lister.Dirs(root)
		logger.L().Debug("selector.listed", "root", root, "count", len(dirs))
		s.loop.Post(func() {
			s.resolve(dirs, done)
		})
	})
}

// Wait blocks until pending listings have been handed to the loop
func (s *Selector) Wait() {
	s.wg.Wait()
}

func (s *Selector) resolve(dirs []domain.Entry, done func(domain.SelectionOutcome)) {
	switch len(dirs) {
	case 0:
		done(domain.SelectionOutcome{Kind: domain.NoCandidates})
	case 1:
		entry := dirs[0]
		done(domain.SelectionOutcome{Kind: domain.AutoSelected, Entry: &entry})
	default:
		names := make([]string, len(dirs))
		for i, d := range dirs {
			names[i] = d.Name
		}
		s.chooser.ChooseOne(ChooseTitle, names, func(i int) {
			if i < 0 || i >= len(dirs) {
				done(domain.SelectionOutcome{Kind: domain.UserPicked})
				return
			}
			entry := dirs[i]
			done(domain.SelectionOutcome{Kind: domain.UserPicked, Entry: &entry})
		})
	}
}
