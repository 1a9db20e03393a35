package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCommand(a *app) *cobra.Command {
	var renderers bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := a.gen.Templates()
			if renderers {
				names = a.gen.Renderers()
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&renderers, "renderers", false, "list renderers instead of templates")
	return cmd
}

func inspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <template>",
		Short: "Show the parameters a template requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.gen.Template(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, req := range tmpl.Requirements() {
				fmt.Fprintf(out, "%s\t%s\tline %d\n", req.Name, req.Usage, req.Line)
			}
			return nil
		},
	}
}
