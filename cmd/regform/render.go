package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

func renderCmd(flags *rootFlags) *cobra.Command {
	var (
		format   string
		copyPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the empty form to stdout",
		Long: `Render the empty registration form.

Formats:
  html    standalone page (default)
  json    view document
  pretty  field listing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			policy, err := cfg.ResolvePolicy()
			if err != nil {
				return err
			}

			options := []orchestrator.Option{
				orchestrator.WithPolicy(policy),
				orchestrator.WithTheme(cfg.RendererTheme()),
			}
			if copyPath != "" {
				data, err := os.ReadFile(copyPath)
				if err != nil {
					return fmt.Errorf("read copy overrides: %w", err)
				}
				preset, err := orchestrator.NewJSONPresetTransformer(data)
				if err != nil {
					return err
				}
				options = append(options, orchestrator.WithTransformers(preset))
			}

			orch, err := orchestrator.New(cmd.Context(), options...)
			if err != nil {
				return err
			}
			if _, err := orch.Renderer(rendererName(format)); err != nil {
				return fmt.Errorf("unsupported format %q (available: html, json, pretty)", format)
			}

			out, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Renderer: rendererName(format),
				RenderOptions: render.RenderOptions{
					Action:      "/submit",
					ResetAction: "/reset",
					IntroHTML:   cfg.IntroHTML,
				},
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format (html, json, pretty)")
	cmd.Flags().StringVar(&copyPath, "copy", "", "JSON file overriding the title, labels and placeholders")

	return cmd
}

func rendererName(format string) string {
	switch format {
	case "html", "":
		return "vanilla"
	case "pretty", "text":
		return "tui"
	default:
		return format
	}
}
