package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"armpick/internal/config"
	"armpick/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	isometric    bool
	orthographic bool
	writeConfig  bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "armpick",
		Short:         "Pick and drag the joints of an IK arm with the mouse",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", filepath.Join("config", "armpick.yaml"), "path to the YAML config")
	f.BoolVar(&opts.isometric, "isometric", false, "start with the isometric camera preset")
	f.BoolVar(&opts.orthographic, "orthographic", false, "use an orthographic projection")
	f.BoolVar(&opts.writeConfig, "write-config", false, "write the default config to --config and exit")
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (config.Config, error) {
	if opts.writeConfig {
		cfg := config.Default()
		if err := config.Save(opts.configPath, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.isometric {
		cfg.Camera.Preset = "isometric"
	}
	if opts.orthographic {
		cfg.Camera.Projection = "orthographic"
	}
	return cfg, cfg.Validate()
}

func run(opts options) error {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") && !filepath.IsAbs(opts.configPath) {
			os.Chdir(execDir)
		}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.writeConfig {
		log.Printf("wrote default config to %s", opts.configPath)
		return nil
	}

	game.New(cfg, log.New(os.Stderr, "armpick: ", log.LstdFlags)).Run()
	return nil
}
