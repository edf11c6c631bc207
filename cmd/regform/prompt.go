package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func promptCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the registration form interactively",
		Long: `Prompt for each field in the terminal, then submit, reset, edit or quit.

The submitted values are written to stdout; prompts and messages go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("unsupported output format %q", output)
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			policy, err := cfg.ResolvePolicy()
			if err != nil {
				return err
			}

			logger := cfg.Logger(cmd.ErrOrStderr())
			ctrl, err := form.NewController(
				form.WithPolicy(policy),
				form.WithLogger(logger),
				form.WithNotifier(form.NotifierFunc(func(context.Context, form.Notice) error {
					return nil
				})),
			)
			if err != nil {
				return err
			}

			session, err := tui.New(
				tui.WithOutputFormat(format),
				tui.WithOutput(cmd.ErrOrStderr()),
			)
			if err != nil {
				return err
			}

			out, err := session.Run(cmd.Context(), ctrl)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, form, pretty)")

	return cmd
}
