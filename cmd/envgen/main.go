package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coptic/envgen/internal/config"
	"github.com/coptic/envgen/internal/logger"
)

// Version info (set by ldflags)
var version = "dev"

// app carries state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	configPath string
	debug      bool
}

func main() {
	err := newRootCmd().Execute()
	logger.Close()
	if err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "envgen",
		Short: "Create the .env file for the user API database connection",
		Long: `envgen asks for a database name, username and password and writes them to
a .env file read by the Spring Boot user API:

  DATABASE_URL=jdbc:postgresql://host.docker.internal:5432/{dbname}
  DATABASE_USERNAME={dbuser}
  DATABASE_PASSWORD={dbpass}

An existing file is overwritten.

Commands:
  envgen [generate]   Prompt for values and write the file (default)
  envgen show         Print the current file with the password masked
  envgen check        Connect to the database described by the file`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (default ~/.config/envgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	// Bare "envgen" behaves like "envgen generate"
	gen := generateCommand(a, rootCmd)
	rootCmd.RunE = gen

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newShowCmd(a),
		newCheckCmd(a),
	)

	return rootCmd
}

// setup binds the executing command's flags to config keys, loads the
// configuration and starts the file logger when --debug or log_file asks
// for one.
func (a *app) setup(cmd *cobra.Command, bindings map[string]string) error {
	for key, name := range bindings {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadConfigFromPath(a.v, a.configPath)
	} else {
		a.cfg, err = config.LoadConfig(a.v)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	debug := a.debug || a.cfg.Debug
	if !debug && a.cfg.LogFile == "" {
		return nil
	}

	logLevel := logger.LevelInfo
	if debug {
		logLevel = logger.LevelDebug
	}
	if err := logger.InitLogger(logLevel, a.cfg.LogFile); err != nil {
		return err
	}
	logger.Debug("Configuration loaded", "command", cmd.Name(), "output", a.cfg.Output)

	return nil
}
