package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/app"
	"abik/internal/domain"
	"abik/internal/eventbus"
	"abik/internal/logger"
	"abik/internal/ui"
	"abik/internal/watch"
)

// uiEvents are the domain events the TUI reacts to
var uiEvents = []domain.EventType{
	domain.EventOperationStarted,
	domain.EventOperationFinished,
	domain.EventDeletionProgress,
	domain.EventDeletionCompleted,
	domain.EventWorkDirChanged,
	domain.EventConfigSaved,
	domain.EventError,
}

func runTUI(ctx context.Context, flags *globalFlags) error {
	e, err := newEnv(flags)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workDir := e.cfg.WorkDir
	model := ui.NewModel(ui.Options{
		Config:        e.cfg,
		ConfigService: e.cfgSvc,
		Console:       e.console,
		CountProjects: func() int { return len(e.lister.Dirs(workDir)) },
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	uiLoop := ui.NewLoop(p)

	kitchen := app.New(ctx, uiLoop, model, app.Options{
		WorkDir: workDir,
		Engine:  e.engine,
		Lister:  e.lister,
		Console: e.console,
		Bus:     e.bus,
	})
	model.SetWorkflows(kitchen)
	model.SetLoop(uiLoop)
	model.SetProgram(p)

	// Forward events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(ev eventbus.DomainEvent) {
		select {
		case eventChan <- ev:
		default:
			logger.L().Warn("tui.event_dropped", "event", string(ev.Type()))
		}
	}
	for _, t := range uiEvents {
		unsubscribe := e.bus.Subscribe(t, forwardEvent)
		defer unsubscribe()
	}
	go func() {
		for {
			select {
			case ev := <-eventChan:
				p.Send(ui.EventMsg{Event: ev})
			case <-ctx.Done():
				return
			}
		}
	}()

	watcher := watch.Keep(ctx, e.bus, workDir, watch.DefaultDebounce)
	defer watcher.Close()

	_, err = p.Run()
	interrupted := ctx.Err() != nil

	// Unblock background work waiting on the UI, then let it finish
	cancel()
	e.console.Unsubscribe()
	kitchen.Wait()
	uiLoop.Close()

	if interrupted && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
