package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables that stand in for flags.
const envPrefix = "GOSFRC_"

// envKey maps a flag name to its variable: --profiles-file reads
// GOSFRC_PROFILES_FILE.
func envKey(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv loads .env from the working directory when present, then sets
// every flag of cmd that was not given on the command line from its
// environment variable. Variables already in the environment win over .env.
func applyEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" {
			return
		}
		key := envKey(f.Name)
		v, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		if err := cmd.Flags().Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return errors.Join(errs...)
}
