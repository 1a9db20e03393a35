// Package commands implements the benchtmpl command tree.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-benchtmpl/internal/config"
	"github.com/goliatone/go-benchtmpl/internal/logging"
	"github.com/goliatone/go-benchtmpl/internal/prompt"
	"github.com/goliatone/go-benchtmpl/pkg/orchestrator"
)

// Env carries the process boundary so commands can be driven from tests.
type Env struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ []string
	// Prompter answers --interactive questions. Defaults to a survey driver.
	Prompter prompt.Driver
}

// DefaultEnv wires the real process streams and environment.
func DefaultEnv() Env {
	return Env{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ(),
	}
}

type app struct {
	env        Env
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
	gen        *orchestrator.Orchestrator
}

// NewRootCommand builds the command tree.
func NewRootCommand(env Env, version string) *cobra.Command {
	if env.Prompter == nil {
		env.Prompter = prompt.NewSurveyDriver()
	}
	a := &app{env: env}

	root := &cobra.Command{
		Use:   "benchtmpl",
		Short: "Render and validate benchmark manifests and configuration",
		Long: `benchtmpl renders templated benchmark artifacts, such as Kubernetes
manifests and PostgreSQL configuration, from parameter sets. Every placeholder
must be bound, and rendered output can be validated before it is applied.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./benchtmpl.yaml or $HOME/.benchtmpl/benchtmpl.yaml)")
	flags.String("templates-dir", "", "directory of extra .j2 templates")
	flags.String("renderer", "", "renderer to use (strict or pongo2)")
	flags.Int("concurrency", 0, "maximum parallel renders, 0 for unbounded")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console or json)")

	root.AddCommand(
		renderCommand(a),
		listCommand(a),
		inspectCommand(a),
		validateCommand(a),
	)
	return root
}

var flagKeys = map[string]string{
	"templates-dir": config.KeyTemplatesDir,
	"renderer":      config.KeyRenderEngine,
	"concurrency":   config.KeyConcurrency,
	"log-level":     config.KeyLogLevel,
	"log-format":    config.KeyLogFormat,
}

func (a *app) init(cmd *cobra.Command) error {
	a.v = config.New(a.configFile)
	for name, key := range flagKeys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if f := cmd.Flags().Lookup("env-prefix"); f != nil {
		if err := a.v.BindPFlag(config.KeyEnvPrefix, f); err != nil {
			return fmt.Errorf("bind flag env-prefix: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: a.env.Stderr,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	if cfg.ConfigFile != "" {
		logger.Debug("loaded config", zap.String("file", cfg.ConfigFile))
	}

	opts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithConcurrency(cfg.Concurrency),
	}
	if cfg.TemplatesDir != "" {
		opts = append(opts, orchestrator.WithTemplatesFS(os.DirFS(cfg.TemplatesDir)))
	}
	a.gen = orchestrator.New(opts...)
	return nil
}
