// Package app wires the orchestration core into the extract, build and
// clean workflows the user drives from a host UI.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc"

	"abik/internal/console"
	"abik/internal/deleter"
	"abik/internal/discovery"
	"abik/internal/dispatch"
	"abik/internal/domain"
	"abik/internal/engine"
	"abik/internal/eventbus"
	"abik/internal/logger"
	"abik/internal/loop"
	"abik/internal/runguard"
	"abik/internal/selection"
	"abik/internal/selector"
)

const (
	CleanPromptTitle = "Select items to remove"
)

// Options configures a Kitchen
type Options struct {
	WorkDir string
	Engine  engine.Engine
	Lister  *discovery.Lister
	Console *console.Bus
	Bus     eventbus.EventBus // optional

	// OnSettled is called on the loop once a workflow invocation reached its
	// end: an advisory, a "none" pick, or a finished operation. A dismissed
	// project prompt never settles.
	OnSettled func(op string, ok bool)

	// Open opens extract sources. Defaults to os.Open.
	Open func(path string) (*os.File, error)
}

// Kitchen runs the workflows. Its methods must be called on the loop.
type Kitchen struct {
	workDir    string
	loop       loop.Loop
	surface    Surface
	console    *console.Bus
	bus        eventbus.EventBus
	engine     engine.Engine
	lister     *discovery.Lister
	dispatcher *dispatch.Dispatcher
	selector   *selector.Selector
	deleter    *deleter.Deleter
	onSettled  func(string, bool)
	open       func(string) (*os.File, error)
	listings   conc.WaitGroup
}

// New creates a Kitchen with its own run guard. ctx is handed to every
// operation and should only be cancelled at shutdown.
func New(ctx context.Context, l loop.Loop, surface Surface, opts Options) *Kitchen {
	if opts.Lister == nil {
		opts.Lister = discovery.NewOSLister()
	}
	if opts.Console == nil {
		opts.Console = console.New()
	}
	if opts.Open == nil {
		opts.Open = os.Open
	}

	return &Kitchen{
		workDir:    opts.WorkDir,
		loop:       l,
		surface:    surface,
		console:    opts.Console,
		bus:        opts.Bus,
		engine:     opts.Engine,
		lister:     opts.Lister,
		dispatcher: dispatch.New(ctx, runguard.New(), l, opts.Bus),
		selector:   selector.New(opts.Lister, l, surface),
		deleter:    deleter.New(opts.Lister),
		onSettled:  opts.OnSettled,
		open:       opts.Open,
	}
}

func (k *Kitchen) WorkDir() string       { return k.workDir }
func (k *Kitchen) Console() *console.Bus { return k.console }
func (k *Kitchen) Busy() bool            { return k.dispatcher.Guard().IsBusy() }

// Wait blocks until background work finished. Not for use on the loop.
func (k *Kitchen) Wait() {
	k.listings.Wait()
	k.selector.Wait()
	k.dispatcher.Wait()
}

// Extract unpacks the image at sourcePath into a new project
func (k *Kitchen) Extract(sourcePath string, decompress bool) {
	if k.refuseIfBusy(domain.OpExtract) {
		return
	}

	f, err := k.openSource(sourcePath)
	if err != nil {
		logger.L().Warn("app.open_source_failed", "path", sourcePath, "err", err)
		k.advise(domain.Advisory{Kind: domain.AdviseInvalidInput, Message: domain.MsgInvalidInput})
		k.settle(domain.OpExtract, false)
		return
	}

	req := engine.ExtractRequest{
		Source:            f,
		Name:              ProjectName(sourcePath),
		Dir:               k.workDir,
		DecompressRamdisk: decompress,
	}
	k.console.Infof("Extracting %s", filepath.Base(sourcePath))

	_, err = k.dispatcher.Dispatch(domain.OpExtract, func(ctx context.Context) bool {
		defer f.Close()
		return k.engine.Extract(ctx, req)
	}, k.finished)
	if err != nil {
		f.Close()
		k.denied(domain.OpExtract)
	}
}

// openSource opens path for reading and rejects anything but a regular file
func (k *Kitchen) openSource(path string) (*os.File, error) {
	f, err := k.open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, &domain.OpError{Op: "open", Kind: domain.KindInvalidInput, Path: path, Err: domain.ErrInvalidInput}
	}
	return f, nil
}

// Build lets the user pick a project and repacks it
func (k *Kitchen) Build() {
	if k.refuseIfBusy(domain.OpBuild) {
		return
	}

	k.selector.Select(k.workDir, func(o domain.SelectionOutcome) {
		logger.L().Debug("app.project_selected", "outcome", o.Kind.String())
		switch {
		case o.Kind == domain.NoCandidates:
			k.advise(domain.Advisory{Kind: domain.AdviseNoProjects, Message: domain.MsgNoProjects})
			k.settle(domain.OpBuild, false)
		case o.Entry == nil:
			k.settle(domain.OpBuild, false)
		default:
			k.dispatchBuild(*o.Entry)
		}
	})
}

// BuildProject repacks the named project without prompting
func (k *Kitchen) BuildProject(name string) {
	if k.refuseIfBusy(domain.OpBuild) {
		return
	}

	k.listings.Go(func() {
		dirs := k.lister.Dirs(k.workDir)
		k.loop.Post(func() {
			for _, e := range dirs {
				if e.Name == name {
					k.dispatchBuild(e)
					return
				}
			}
			k.advise(domain.Advisory{Kind: domain.AdviseInvalidInput, Message: fmt.Sprintf("Project not found: %s", name)})
			k.settle(domain.OpBuild, false)
		})
	})
}

func (k *Kitchen) dispatchBuild(entry domain.Entry) {
	k.console.Infof("Building %s", entry.Name)
	_, err := k.dispatcher.Dispatch(domain.OpBuild, func(ctx context.Context) bool {
		return k.engine.Build(ctx, engine.BuildRequest{Dir: entry.Path})
	}, k.finished)
	if err != nil {
		k.denied(domain.OpBuild)
	}
}

// Clean lets the user pick entries of the working directory and removes them
func (k *Kitchen) Clean() {
	if k.refuseIfBusy(domain.OpClean) {
		return
	}

	k.plan(func(plan *deleter.Plan) {
		k.surface.ChooseMany(CleanPromptTitle, plan.Names(), func(sel *selection.Set) {
			if sel == nil || sel.Count() == 0 {
				k.settle(domain.OpClean, false)
				return
			}
			k.remove(plan, sel)
		})
	})
}

// CleanNames removes the named entries, or every entry when all is set
func (k *Kitchen) CleanNames(all bool, names ...string) {
	if k.refuseIfBusy(domain.OpClean) {
		return
	}

	k.plan(func(plan *deleter.Plan) {
		sel := selection.New(len(plan.Entries))
		if all {
			sel.ToggleAll()
		}
		for _, name := range names {
			found := false
			for i, e := range plan.Entries {
				if e.Name == name {
					sel.Set(i, true)
					found = true
				}
			}
			if !found {
				k.advise(domain.Advisory{Kind: domain.AdviseInvalidInput, Message: fmt.Sprintf("Not found: %s", name)})
				k.settle(domain.OpClean, false)
				return
			}
		}
		if sel.Count() == 0 {
			k.advise(domain.Advisory{Kind: domain.AdviseNothingToRemove, Message: domain.MsgNothingToRemove})
			k.settle(domain.OpClean, false)
			return
		}
		k.remove(plan, sel)
	})
}

// plan lists the working directory in the background and hands a non-empty
// plan to then on the loop
func (k *Kitchen) plan(then func(*deleter.Plan)) {
	k.listings.Go(func() {
		plan, err := k.deleter.Plan(k.workDir)
		k.loop.Post(func() {
			if err != nil {
				k.advise(domain.Advisory{Kind: domain.AdviseNothingToRemove, Message: domain.MsgNothingToRemove})
				k.settle(domain.OpClean, false)
				return
			}
			then(plan)
		})
	})
}

func (k *Kitchen) remove(plan *deleter.Plan, sel *selection.Set) {
	title := fmt.Sprintf("Cleaning %s", filepath.Base(plan.Root))
	var summary deleter.Summary

	_, err := k.dispatcher.Dispatch(domain.OpClean, func(ctx context.Context) bool {
		summary = k.deleter.Execute(plan, sel, func(p deleter.Progress) {
			k.publish(domain.DeletionProgressEvent{Entry: p.Entry, Index: p.Index, Completed: p.Completed, Total: p.Total})
			msg := "Deleting " + p.Entry.Name
			if err := k.loop.Call(ctx, func() { k.surface.ShowProgress(title, msg) }); err != nil {
				logger.L().Warn("app.progress_dropped", "entry", p.Entry.Name, "err", err)
			}
		})
		for _, f := range summary.Failures {
			k.console.Errorf("%v", f.Err)
		}
		return len(summary.Failures) == 0
	}, func(res domain.OperationResult) {
		k.surface.HideProgress()
		k.publish(domain.DeletionCompletedEvent{Deleted: summary.Deleted, Failed: len(summary.Failures)})

		a := domain.Advisory{Kind: domain.AdviseDone, Message: fmt.Sprintf("Removed %d item(s)", summary.Deleted)}
		if n := len(summary.Failures); n > 0 {
			a = domain.Advisory{Kind: domain.AdviseFailed, Message: fmt.Sprintf("Removed %d item(s), %d failed", summary.Deleted, n)}
		}
		k.advise(a)
		k.settle(domain.OpClean, res.OK)
	})
	if err != nil {
		k.denied(domain.OpClean)
	}
}

// finished reports an extract or build result
func (k *Kitchen) finished(res domain.OperationResult) {
	if res.OK {
		k.advise(domain.Advisory{Kind: domain.AdviseDone, Message: fmt.Sprintf("%s finished", capitalize(res.Name))})
	} else {
		k.advise(domain.Advisory{Kind: domain.AdviseFailed, Message: fmt.Sprintf("%s failed, see console", capitalize(res.Name))})
	}
	k.settle(res.Name, res.OK)
}

func (k *Kitchen) refuseIfBusy(op string) bool {
	if !k.Busy() {
		return false
	}
	k.denied(op)
	return true
}

func (k *Kitchen) denied(op string) {
	logger.L().Info("app.busy", "operation", op)
	k.advise(domain.BusyAdvisory())
	k.settle(op, false)
}

func (k *Kitchen) advise(a domain.Advisory) {
	k.surface.Advise(a)
}

func (k *Kitchen) settle(op string, ok bool) {
	if k.onSettled != nil {
		k.onSettled(op, ok)
	}
}

func (k *Kitchen) publish(e domain.DomainEvent) {
	if k.bus != nil {
		k.bus.Publish(e)
	}
}

// ProjectName is the file name of path without its extension
func ProjectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
