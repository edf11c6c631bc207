package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/validation"
)

func validateCmd(flags *rootFlags) *cobra.Command {
	var in validation.Input

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate registration values",
		Long: `Validate the four registration fields and print one line per error.

Exits with status 1 when any field is invalid.

Examples:
  regform validate --first-name=Ada --last-name=Lovelace --email=ada@example.com --phone=5551234567
  regform validate --policy=legacy --phone=12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			policy, err := cfg.ResolvePolicy()
			if err != nil {
				return err
			}
			v, err := validation.New(policy)
			if err != nil {
				return err
			}

			result := v.All(in)
			out := cmd.OutOrStdout()
			if result.Valid() {
				printf(out, "valid\n")
				return nil
			}
			for _, issue := range result.Issues() {
				printf(out, "%s: %s\n", issue.Field, issue.Message)
			}
			printf(out, "form: %s\n", v.FormError(result))
			return errInvalid
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.PhoneNumber, "phone", "", "phone number")

	return cmd
}
