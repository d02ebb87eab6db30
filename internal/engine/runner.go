package engine

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"sync"
)

// Runner executes one external command. Output is handed over line by line.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string, stdin io.Reader, stdout, stderr func(string)) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir string, argv []string, stdin io.Reader, stdout, stderr func(string)) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = stdin

	out := &lineWriter{emit: stdout}
	errw := &lineWriter{emit: stderr}
	cmd.Stdout = out
	cmd.Stderr = errw

	err := cmd.Run()
	out.Flush()
	errw.Flush()
	return err
}

// lineWriter splits a byte stream into lines
type lineWriter struct {
	mu   sync.Mutex
	buf  []byte
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(bytes.TrimRight(w.buf[:i], "\r")))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits a trailing line that had no newline
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.emit(string(bytes.TrimRight(w.buf, "\r")))
		w.buf = nil
	}
}
