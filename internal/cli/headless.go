package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"abik/internal/app"
	"abik/internal/console"
	"abik/internal/domain"
	"abik/internal/loop"
	"abik/internal/selection"
)

// headlessSurface is the Surface of the command line. Prompts read from
// in on their own goroutine and post the answer back to the loop.
type headlessSurface struct {
	loop   loop.Loop
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
}

func newHeadlessSurface(l loop.Loop, in io.Reader, out, errOut io.Writer) *headlessSurface {
	return &headlessSurface{
		loop:   l,
		out:    out,
		errOut: errOut,
		in:     bufio.NewReader(in),
	}
}

func (s *headlessSurface) Advise(a domain.Advisory) {
	fmt.Fprintln(s.errOut, a.Message)
}

// ChooseOne reads a 1-based number. Anything else, including end of
// input, confirms with nothing picked.
func (s *headlessSurface) ChooseOne(title string, options []string, reply func(int)) {
	s.printOptions(title, options)
	fmt.Fprint(s.out, "Number (empty for none): ")
	go func() {
		line, _ := s.in.ReadString('\n')
		idx := -1
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n >= 1 && n <= len(options) {
			idx = n - 1
		}
		s.loop.Post(func() { reply(idx) })
	}()
}

// ChooseMany reads numbers separated by commas or spaces, or "all".
// Empty input cancels.
func (s *headlessSurface) ChooseMany(title string, options []string, reply func(*selection.Set)) {
	s.printOptions(title, options)
	fmt.Fprint(s.out, "Numbers or \"all\" (empty to cancel): ")
	go func() {
		line, _ := s.in.ReadString('\n')
		sel := parseSelection(line, len(options))
		s.loop.Post(func() { reply(sel) })
	}()
}

func (s *headlessSurface) ShowProgress(_, message string) {
	fmt.Fprintln(s.errOut, message)
}

func (s *headlessSurface) HideProgress() {}

func (s *headlessSurface) printOptions(title string, options []string) {
	fmt.Fprintln(s.out, title)
	for i, opt := range options {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, opt)
	}
}

// parseSelection returns nil for empty or invalid input
func parseSelection(line string, n int) *selection.Set {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	sel := selection.New(n)
	if strings.EqualFold(line, "all") {
		sel.ToggleAll()
		return sel
	}
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil || i < 1 || i > n {
			return nil
		}
		sel.Set(i-1, true)
	}
	return sel
}

// runHeadless runs one workflow invocation to its end. The console is
// echoed to out while it runs.
func runHeadless(ctx context.Context, e *env, in io.Reader, out, errOut io.Writer, start func(k *app.Kitchen)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := loop.NewSerial()
	defer l.Close()

	settled := make(chan bool, 1)
	k := app.New(ctx, l, newHeadlessSurface(l, in, out, errOut), app.Options{
		WorkDir: e.cfg.WorkDir,
		Engine:  e.engine,
		Lister:  e.lister,
		Console: e.console,
		Bus:     e.bus,
		OnSettled: func(_ string, ok bool) {
			select {
			case settled <- ok:
			default:
			}
		},
	})

	e.console.Subscribe(l, func(u console.Update) {
		for _, line := range u.Lines {
			fmt.Fprintln(out, line)
		}
	})
	defer e.console.Unsubscribe()

	l.Post(func() { start(k) })

	var ok bool
	select {
	case ok = <-settled:
	case <-ctx.Done():
	}
	cancel()
	k.Wait()

	if !ok {
		return errFailed
	}
	return nil
}
