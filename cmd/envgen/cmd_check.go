package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coptic/envgen/internal/db"
	"github.com/coptic/envgen/internal/envfile"
)

var goodFormat = color.New(color.FgGreen).SprintFunc()

// newCheckCmd creates the check subcommand
func newCheckCmd(a *app) *cobra.Command {
	var retries int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Test the database connection described by the .env file",
		Long: `Connect to PostgreSQL with the settings from the .env file and report the
server version.

host.docker.internal normally resolves only inside containers; use --host
to reach the same server from the host machine. An empty password falls
back to PGPASSWORD.

Example:
  envgen check --host localhost
  envgen check --retries 5 --timeout 3s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.setup(cmd, map[string]string{
				"output":        "output",
				"check.host":    "host",
				"check.sslmode": "sslmode",
				"check.timeout": "timeout",
			})
			if err != nil {
				return err
			}

			values, target, err := envfile.Read(a.cfg.Output)
			if err != nil {
				return err
			}
			if a.cfg.Check.Host != "" {
				target.Host = a.cfg.Check.Host
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			info, err := db.Check(ctx, db.CheckConfig{
				Target:  target,
				Values:  values,
				SSLMode: a.cfg.Check.SSLMode,
				Timeout: a.cfg.Check.Timeout,
				Retries: retries,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Connected to %s as %s on %s:%d\n",
				goodFormat("✅"), info.Database, info.User, target.Host, target.Port)
			fmt.Fprintf(out, "   %s\n", info.Version)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", envfile.DefaultPath, "file to read")
	cmd.Flags().String("host", "", "connect to this host instead of the one in DATABASE_URL")
	cmd.Flags().String("sslmode", "disable", "PostgreSQL sslmode")
	cmd.Flags().Duration("timeout", 0, "per-attempt timeout (default 10s)")
	cmd.Flags().IntVar(&retries, "retries", 0, "extra attempts with exponential backoff")

	return cmd
}
