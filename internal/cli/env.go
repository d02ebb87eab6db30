package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"abik/internal/config"
	"abik/internal/console"
	"abik/internal/discovery"
	"abik/internal/engine"
	"abik/internal/eventbus"
	"abik/internal/logger"
)

// env holds what both hosts share
type env struct {
	cfg     *config.Config
	cfgSvc  config.ConfigService
	bus     eventbus.EventBus
	console *console.Bus
	lister  *discovery.Lister
	engine  engine.Engine
	cleanup func() error
}

func newEnv(flags *globalFlags) (*env, error) {
	bus := eventbus.New()
	cfgSvc := config.NewConfigServiceWithBus(flags.configPath, bus)

	// The log lives next to the config so that it never shows up as a
	// project in the working directory.
	cleanup, err := logger.Setup(logger.Config{
		Root:  filepath.Dir(cfgSvc.Path()),
		Debug: flags.debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}

	cfg, err := cfgSvc.Load()
	if err != nil {
		bus.Close()
		if cleanup != nil {
			_ = cleanup()
		}
		return nil, err
	}
	if flags.workDir != "" {
		abs, err := filepath.Abs(config.ExpandHome(flags.workDir))
		if err != nil {
			abs = flags.workDir
		}
		cfg.WorkDir = abs
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		logger.L().Warn("cli.workdir_create_failed", "path", cfg.WorkDir, "err", err)
	}
	logger.L().Info("cli.env", "work_dir", cfg.WorkDir, "config", cfgSvc.Path())

	c := console.New()
	return &env{
		cfg:     cfg,
		cfgSvc:  cfgSvc,
		bus:     bus,
		console: c,
		lister:  discovery.NewLister(fs),
		engine: engine.NewToolchain(fs, c, engine.Tools{
			Unpack: cfg.Tools.Unpack,
			Repack: cfg.Tools.Repack,
		}, nil),
		cleanup: cleanup,
	}, nil
}

func (e *env) close() {
	e.bus.Close()
	if e.cleanup != nil {
		_ = e.cleanup()
	}
}
