package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-benchtmpl/internal/prompt"
	"github.com/goliatone/go-benchtmpl/pkg/orchestrator"
	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/validate"
)

type renderFlags struct {
	paramFiles  []string
	sets        []string
	noEnv       bool
	schema      string
	output      string
	outputDir   string
	interactive bool
}

func renderCommand(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <template>...",
		Short: "Render one or more templates",
		Long: `Render binds parameters from, in order of precedence, --set assignments,
--params files (later files win) and environment variables carrying the
configured prefix, then renders each template. With several templates the
output is written under --output-dir.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.paramFiles, "params", "p", nil, "parameter file (.yaml, .json, .hcl); repeatable")
	flags.StringArrayVar(&f.sets, "set", nil, "name=value override, name=[a, b] for sequences; repeatable")
	flags.String("env-prefix", "", "environment prefix for parameters (default BENCHTMPL_PARAM_)")
	flags.BoolVar(&f.noEnv, "no-env", false, "ignore parameters from the environment")
	flags.StringVar(&f.schema, "schema", "auto", "validate output: auto, kubernetes, postgresql or none")
	flags.StringVarP(&f.output, "output", "o", "", "output file for a single template (default stdout)")
	flags.StringVar(&f.outputDir, "output-dir", "", "output directory, required for several templates")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "prompt for parameters that are still unbound")
	return cmd
}

func (a *app) render(cmd *cobra.Command, f *renderFlags, names []string) error {
	if len(names) > 1 && f.outputDir == "" {
		return errors.New("render: --output-dir is required with several templates")
	}

	binder, err := a.binder(f)
	if err != nil {
		return err
	}

	reqs := make([]orchestrator.Request, 0, len(names))
	for _, name := range names {
		req := orchestrator.Request{Template: name, Params: binder}
		if f.interactive {
			tmpl, err := a.gen.Template(name)
			if err != nil {
				return err
			}
			answers, err := prompt.Fill(cmd.Context(), a.env.Prompter, tmpl, binder)
			if err != nil {
				return err
			}
			req.Params = params.Chain(binder, answers)
		}
		schema, err := schemaFor(f.schema, name)
		if err != nil {
			return err
		}
		req.Schema = schema
		reqs = append(reqs, req)
	}

	outs, err := a.gen.GenerateAll(cmd.Context(), reqs)
	if err != nil {
		if v := validate.Violations(err); len(v) > 0 {
			for _, violation := range v {
				fmt.Fprintln(cmd.ErrOrStderr(), violation.Error())
			}
		}
		return err
	}

	if len(outs) == 1 && f.outputDir == "" {
		return writeOutput(cmd.OutOrStdout(), f.output, outs[0].Result.Text)
	}
	for _, out := range outs {
		path := filepath.Join(f.outputDir, filepath.FromSlash(out.Result.Template))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := os.WriteFile(path, []byte(out.Result.Text), 0o644); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		a.logger.Info("wrote output", zap.String("template", out.Result.Template), zap.String("path", path))
	}
	return nil
}

// binder layers --set over --params files over the environment.
func (a *app) binder(f *renderFlags) (params.Binder, error) {
	sets, err := params.ParseAssignments(f.sets)
	if err != nil {
		return nil, err
	}
	files, err := params.LoadFiles(f.paramFiles...)
	if err != nil {
		return nil, err
	}
	binders := []params.Binder{sets, files}
	if !f.noEnv && a.cfg.ParamEnvPrefix != "" {
		binders = append(binders, params.FromEnv(a.cfg.ParamEnvPrefix, a.env.Environ))
	}
	return params.Chain(binders...), nil
}

func schemaFor(name, template string) (*validate.Schema, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "auto":
		prefix, _, _ := strings.Cut(template, "/")
		schema, err := validate.Builtin(prefix)
		if err != nil {
			return nil, nil
		}
		return &schema, nil
	default:
		schema, err := validate.Builtin(name)
		if err != nil {
			return nil, err
		}
		return &schema, nil
	}
}

func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
