package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/config"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errInvalid marks a validation failure that has already been reported.
var errInvalid = errors.New("registration is invalid")

type rootFlags struct {
	configPath string
	envFile    string
	policy     string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "regform",
		Short: "Registration form validator and host",
		Long: `regform validates and hosts a four-field registration form
(first name, last name, email, phone number).

It can serve the form as an HTML page with live validation, run it as an
interactive terminal session, or validate values from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file (default .env, ignored when missing)")
	pf.StringVar(&flags.policy, "policy", "", "validation policy preset (canonical, legacy)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		serveCmd(flags),
		promptCmd(flags),
		validateCmd(flags),
		renderCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// load resolves the configuration and applies persistent flag overrides.
func (f *rootFlags) load() (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Path:    f.configPath,
		EnvFile: f.envFile,
	})
	if err != nil {
		return config.Config{}, err
	}
	if f.policy != "" {
		cfg.Policy = f.policy
		cfg.PhoneRule, cfg.PhoneOverflow, cfg.FormError = "", "", ""
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
