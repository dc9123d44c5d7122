// Package generator runs the interactive flow that collects the database
// name, username and password and writes them to the .env file.
package generator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sethvargo/go-password/password"

	"github.com/coptic/envgen/internal/envfile"
	"github.com/coptic/envgen/internal/logger"
	"github.com/coptic/envgen/internal/prompt"
)

// Console text.
const (
	Banner         = "Create .env file for Spring Boot database connection:"
	PromptName     = "Enter DB name: "
	PromptUser     = "Enter DB username: "
	PromptPassword = "Enter DB password: "
	Success        = "✅ .env file created successfully."
)

// Generated password shape: length, digits, symbols.
const (
	generatedLength  = 24
	generatedDigits  = 4
	generatedSymbols = 0
)

// Options controls a single run. The zero value with In and Out set writes
// .env in the working directory for host.docker.internal:5432.
type Options struct {
	In  io.Reader
	Out io.Writer

	// Output is the destination path. Defaults to .env.
	Output string
	// Target is embedded in DATABASE_URL. Defaults to host.docker.internal:5432.
	Target envfile.Target
	// Seed values skip their prompt when non-empty.
	Seed envfile.Values

	MaskPassword     bool
	GeneratePassword bool
}

// Run prints the banner, prompts for the three values, writes the file and
// prints the success line. Any error leaves the success line unprinted.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	if _, err := fmt.Fprintln(opts.Out, Banner); err != nil {
		return fmt.Errorf("write banner: %w", err)
	}

	values, err := collect(ctx, opts)
	if err != nil {
		return err
	}

	logger.Debug("Writing env file",
		"path", opts.Output,
		"host", opts.Target.Host,
		"port", opts.Target.Port,
		"database", values.Name,
		"user", values.User,
		"password_set", values.Password != "",
	)

	if err := envfile.Write(opts.Output, opts.Target, values); err != nil {
		logger.Error("Failed to write env file", "path", opts.Output, "error", err)
		return err
	}

	logger.Info("Env file written", "path", opts.Output)

	if _, err := fmt.Fprintln(opts.Out, Success); err != nil {
		return fmt.Errorf("write confirmation: %w", err)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Output == "" {
		o.Output = envfile.DefaultPath
	}
	if o.Target.Host == "" {
		o.Target.Host = envfile.DefaultHost
	}
	if o.Target.Port == 0 {
		o.Target.Port = envfile.DefaultPort
	}
	return o
}

// collect reads name, username and password in that order.
func collect(ctx context.Context, opts Options) (envfile.Values, error) {
	p := prompt.New(opts.In, opts.Out)

	name, err := ask(ctx, opts.Seed.Name, func() (string, error) { return p.Line(PromptName) })
	if err != nil {
		return envfile.Values{}, err
	}

	user, err := ask(ctx, opts.Seed.User, func() (string, error) { return p.Line(PromptUser) })
	if err != nil {
		return envfile.Values{}, err
	}

	pass, err := ask(ctx, opts.Seed.Password, func() (string, error) {
		switch {
		case opts.GeneratePassword:
			return generate(opts.Out)
		case opts.MaskPassword:
			return p.Secret(PromptPassword)
		default:
			return p.Line(PromptPassword)
		}
	})
	if err != nil {
		return envfile.Values{}, err
	}

	return envfile.Values{Name: name, User: user, Password: pass}, nil
}

func ask(ctx context.Context, seed string, read func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if seed = strings.TrimSpace(seed); seed != "" {
		return seed, nil
	}
	return read()
}

func generate(out io.Writer) (string, error) {
	pass, err := password.Generate(generatedLength, generatedDigits, generatedSymbols, false, false)
	if err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Generated DB password: %s\n", pass); err != nil {
		return "", fmt.Errorf("write generated password: %w", err)
	}
	return pass, nil
}
