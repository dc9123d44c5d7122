package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coptic/envgen/internal/envfile"
	"github.com/coptic/envgen/internal/logger"
)

const maskedPassword = "********"

var (
	keyFormat   = color.New(color.FgCyan).SprintFunc()
	valueFormat = color.New(color.FgHiWhite).SprintFunc()
	mutedFormat = color.New(color.FgHiBlack).SprintFunc()
)

// envSummary is the show output for the json and yaml formats.
type envSummary struct {
	Path     string `json:"path" yaml:"path"`
	URL      string `json:"database_url" yaml:"database_url"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// newShowCmd creates the show subcommand
func newShowCmd(a *app) *cobra.Command {
	var (
		format string
		reveal bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current .env file",
		Long: `Print the settings stored in the .env file. The password is masked
unless --reveal is given.

Example:
  envgen show
  envgen show --format yaml
  envgen show -o deploy/.env --reveal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, map[string]string{"output": "output"}); err != nil {
				return err
			}

			values, target, err := envfile.Read(a.cfg.Output)
			if err != nil {
				return err
			}
			logger.Debug("Showing env file", "path", a.cfg.Output, "format", format)

			summary := envSummary{
				Path:     a.cfg.Output,
				URL:      target.JDBCURL(values.Name),
				Host:     target.Host,
				Port:     target.Port,
				Database: values.Name,
				Username: values.User,
				Password: values.Password,
			}
			if !reveal && summary.Password != "" {
				summary.Password = maskedPassword
			}

			return writeSummary(cmd.OutOrStdout(), format, summary)
		},
	}

	cmd.Flags().StringP("output", "o", envfile.DefaultPath, "file to read")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the password in clear text")

	return cmd
}

func writeSummary(w io.Writer, format string, s envSummary) error {
	switch strings.ToLower(format) {
	case "text":
		password := valueFormat(s.Password)
		if s.Password == "" {
			password = mutedFormat("(empty)")
		}
		fmt.Fprintln(w, mutedFormat("# "+s.Path))
		fmt.Fprintf(w, "%s=%s\n", keyFormat(envfile.KeyURL), valueFormat(s.URL))
		fmt.Fprintf(w, "%s=%s\n", keyFormat(envfile.KeyUsername), valueFormat(s.Username))
		fmt.Fprintf(w, "%s=%s\n", keyFormat(envfile.KeyPassword), password)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
