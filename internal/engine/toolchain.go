package engine

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"abik/internal/console"
	"abik/internal/logger"
)

const nameCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Tools holds the argv templates of the external commands. Templates may
// use {input}, {out}, {name}, {kind} and {decompress}.
type Tools struct {
	Unpack []string
	Repack []string
}

// Toolchain is the Engine backed by external unpack and repack commands
type Toolchain struct {
	fs      afero.Fs
	console *console.Bus
	tools   Tools
	runner  Runner
}

// NewToolchain creates a toolchain. A nil runner uses ExecRunner.
func NewToolchain(fs afero.Fs, c *console.Bus, tools Tools, runner Runner) *Toolchain {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Toolchain{fs: fs, console: c, tools: tools, runner: runner}
}

// Extract unpacks req.Source into a fresh project directory under req.Dir.
// The project directory is removed again when the unpack fails.
func (t *Toolchain) Extract(ctx context.Context, req ExtractRequest) bool {
	start := time.Now()

	if req.Source == nil {
		t.console.Errorf("Input file descriptor is invalid")
		return t.finish(false, start)
	}

	name := req.Name
	if name == "" {
		name = RandomName(16)
	}
	if err := t.fs.MkdirAll(req.Dir, 0o755); err != nil {
		t.console.Errorf("Failed to create: %s", req.Dir)
		logger.L().Error("engine.mkdir_failed", "dir", req.Dir, "err", err)
		return t.finish(false, start)
	}

	out := UniquePath(t.fs, filepath.Join(req.Dir, name))
	ok := t.extract(ctx, req, name, out)
	if !ok {
		if err := t.fs.RemoveAll(out); err != nil {
			logger.L().Warn("engine.cleanup_failed", "dir", out, "err", err)
		}
	}
	return t.finish(ok, start)
}

func (t *Toolchain) extract(ctx context.Context, req ExtractRequest, name, out string) bool {
	if err := t.fs.MkdirAll(out, 0o755); err != nil {
		t.console.Errorf("Could not create output directory")
		return false
	}

	kind, err := DetectKind(req.Source)
	if err != nil {
		t.console.Errorf("%s", err)
		return false
	}
	t.console.Infof("boot magic: %s", kind.Magic())

	if len(t.tools.Unpack) == 0 {
		t.console.Errorf("No unpack command configured")
		return false
	}
	argv := expand(t.tools.Unpack, map[string]string{
		"input":      req.Source.Name(),
		"out":        out,
		"name":       name,
		"kind":       string(kind),
		"decompress": strconv.FormatBool(req.DecompressRamdisk),
	})
	if !t.run(ctx, out, argv, req.Source) {
		return false
	}

	project := Project{
		Kind:              kind,
		Source:            filepath.Base(req.Source.Name()),
		DecompressRamdisk: req.DecompressRamdisk,
		ExtractedAt:       time.Now().UTC().Truncate(time.Second),
	}
	if err := WriteProject(t.fs, out, project); err != nil {
		t.console.Errorf("Could not write %s: %v", ProjectFile, err)
		return false
	}
	t.console.Infof("Extracted to %s", out)
	return true
}

// Build repacks the project in req.Dir into a new image inside it
func (t *Toolchain) Build(ctx context.Context, req BuildRequest) bool {
	start := time.Now()
	return t.finish(t.build(ctx, req), start)
}

func (t *Toolchain) build(ctx context.Context, req BuildRequest) bool {
	if req.Dir == "" {
		t.console.Errorf("Project directory is missing")
		return false
	}
	if ok, _ := afero.Exists(t.fs, filepath.Join(req.Dir, ConfigFile)); !ok {
		t.console.Errorf("Configuration file does not exist.")
		return false
	}

	project, err := ReadProject(t.fs, req.Dir)
	if err != nil {
		logger.L().Debug("engine.project_metadata_missing", "dir", req.Dir, "err", err)
		project = &Project{Kind: KindBoot, DecompressRamdisk: true}
	}
	t.console.Infof("boot magic: %s", project.Kind.Magic())

	if len(t.tools.Repack) == 0 {
		t.console.Errorf("No repack command configured")
		return false
	}

	output := filepath.Join(req.Dir, project.Kind.OutputName())
	if err := t.fs.RemoveAll(output); err != nil {
		logger.L().Warn("engine.remove_old_output_failed", "path", output, "err", err)
	}

	argv := expand(t.tools.Repack, map[string]string{
		"input":      req.Dir,
		"out":        output,
		"name":       filepath.Base(req.Dir),
		"kind":       string(project.Kind),
		"decompress": strconv.FormatBool(project.DecompressRamdisk),
	})
	if !t.run(ctx, req.Dir, argv, nil) {
		return false
	}

	if ok, _ := afero.Exists(t.fs, output); !ok {
		t.console.Errorf("Output image was not written")
		return false
	}
	t.console.Infof("Output: %s", output)
	return true
}

func (t *Toolchain) run(ctx context.Context, dir string, argv []string, stdin io.Reader) bool {
	logger.L().Info("engine.run", "dir", dir, "argv", argv)
	err := t.runner.Run(ctx, dir, argv, stdin,
		func(line string) { t.console.Infof("%s", line) },
		func(line string) { t.console.Errorf("%s", line) },
	)
	if err != nil {
		t.console.Errorf("%s failed: %v", filepath.Base(argv[0]), err)
		logger.L().Error("engine.run_failed", "argv", argv, "err", err)
		return false
	}
	return true
}

// finish writes the timing line and a blank separator
func (t *Toolchain) finish(ok bool, start time.Time) bool {
	elapsed := time.Since(start).Seconds()
	if ok {
		t.console.Infof("Done in %.1fs!", elapsed)
	} else {
		t.console.Infof("Failed in %.1fs!", elapsed)
	}
	t.console.Append("")
	return ok
}

// UniquePath returns base, or base_N with the smallest N that does not exist yet
func UniquePath(fs afero.Fs, base string) string {
	if ok, _ := afero.Exists(fs, base); !ok {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if ok, _ := afero.Exists(fs, candidate); !ok {
			return candidate
		}
	}
}

// RandomName returns n random alphanumeric characters
func RandomName(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(nameCharset[rand.IntN(len(nameCharset))])
	}
	return b.String()
}

func expand(template []string, vars map[string]string) []string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)

	argv := make([]string, len(template))
	for i, arg := range template {
		argv[i] = r.Replace(arg)
	}
	return argv
}
