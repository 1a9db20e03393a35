package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-benchtmpl/pkg/validate"
)

func validateCommand(a *app) *cobra.Command {
	var schemaName string
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate rendered output against a schema",
		Long:  "Validate reads a rendered file, or stdin when the file is -, and checks it against a built-in schema.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := validate.Builtin(schemaName)
			if err != nil {
				return err
			}
			text, err := readInput(a.env.Stdin, args[0])
			if err != nil {
				return err
			}

			docs, err := validate.Validate(text, schema)
			for _, v := range validate.Violations(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), v.Error())
			}
			if err != nil {
				var perr *validate.ParseError
				if errors.As(err, &perr) {
					return err
				}
				return fmt.Errorf("validate: %d violation(s), %d valid document(s)", len(validate.Violations(err)), len(docs))
			}

			out := cmd.OutOrStdout()
			for _, doc := range docs {
				fmt.Fprintf(out, "%d\t%s\n", doc.Index, doc.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaName, "schema", "kubernetes", "schema: kubernetes or postgresql")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("validate: read input: %w", err)
	}
	return string(data), nil
}
