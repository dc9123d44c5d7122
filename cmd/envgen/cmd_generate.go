package main

import (
	"github.com/spf13/cobra"

	"github.com/coptic/envgen/internal/envfile"
	"github.com/coptic/envgen/internal/generator"
)

// newGenerateCmd creates the generate subcommand
func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Prompt for database settings and write the .env file",
		Long: `Prompt for the database name, username and password and write them to the
.env file, replacing any existing content.

Values passed with --name or --user (or ENVGEN_NAME and ENVGEN_USER) are not
prompted for. Surrounding whitespace is removed; everything else is written
as typed.

Example:
  envgen generate
  envgen generate --name users --user svc --mask
  envgen generate -o deploy/.env --host postgres --generate-password`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = generateCommand(a, cmd)
	return cmd
}

// generateCommand registers the generate flags on cmd and returns its RunE.
func generateCommand(a *app, cmd *cobra.Command) func(*cobra.Command, []string) error {
	var generatePassword bool

	cmd.Flags().StringP("output", "o", envfile.DefaultPath, "file to write")
	cmd.Flags().String("host", envfile.DefaultHost, "database host written into DATABASE_URL")
	cmd.Flags().Int("port", envfile.DefaultPort, "database port written into DATABASE_URL")
	cmd.Flags().Bool("mask", false, "hide the password while typing")
	cmd.Flags().String("name", "", "database name (skips the prompt)")
	cmd.Flags().String("user", "", "database username (skips the prompt)")
	cmd.Flags().BoolVar(&generatePassword, "generate-password", false, "generate a random password instead of prompting")

	return func(cmd *cobra.Command, args []string) error {
		err := a.setup(cmd, map[string]string{
			"output":        "output",
			"name":          "name",
			"user":          "user",
			"target.host":   "host",
			"target.port":   "port",
			"mask_password": "mask",
		})
		if err != nil {
			return err
		}

		return generator.Run(cmd.Context(), generator.Options{
			In:               cmd.InOrStdin(),
			Out:              cmd.OutOrStdout(),
			Output:           a.cfg.Output,
			Target:           a.cfg.EnvTarget(),
			Seed:             a.cfg.Seed(),
			MaskPassword:     a.cfg.MaskPassword,
			GeneratePassword: generatePassword,
		})
	}
}
