// Package envfile renders, writes and reads the .env file consumed by the
// Spring Boot user API.
//
// The file always holds exactly three keys:
//
//	DATABASE_URL=jdbc:postgresql://host.docker.internal:5432/{dbname}
//	DATABASE_USERNAME={dbuser}
//	DATABASE_PASSWORD={dbpass}
//
// Values are written verbatim. A value containing a newline is not escaped
// and will break the line structure of the file.
package envfile

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Keys read by the consuming application's configuration loader.
const (
	KeyURL      = "DATABASE_URL"
	KeyUsername = "DATABASE_USERNAME"
	KeyPassword = "DATABASE_PASSWORD"
)

const (
	// DefaultPath is the file name written in the current working directory.
	DefaultPath = ".env"
	// DefaultHost is the Docker Desktop alias for the host machine.
	DefaultHost = "host.docker.internal"
	// DefaultPort is the PostgreSQL port.
	DefaultPort = 5432

	jdbcPrefix = "jdbc:postgresql://"
)

var (
	// ErrMissingKey is returned by Read when one of the three keys is absent.
	ErrMissingKey = errors.New("missing key")
	// ErrInvalidURL is returned when DATABASE_URL is not a PostgreSQL JDBC URL.
	ErrInvalidURL = errors.New("invalid jdbc url")
)

// Values holds the user supplied database settings.
type Values struct {
	Name     string
	User     string
	Password string
}

// Target is the host and port embedded in the JDBC URL.
type Target struct {
	Host string
	Port int
}

// DefaultTarget returns host.docker.internal:5432.
func DefaultTarget() Target {
	return Target{Host: DefaultHost, Port: DefaultPort}
}

// Addr joins host and port, bracketing IPv6 hosts.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// JDBCURL formats the connection URL for the given database name.
func (t Target) JDBCURL(dbname string) string {
	return jdbcPrefix + t.Addr() + "/" + dbname
}

// Render builds the three-line block, including the trailing newline.
func Render(t Target, v Values) string {
	var b strings.Builder
	b.WriteString(KeyURL + "=" + t.JDBCURL(v.Name) + "\n")
	b.WriteString(KeyUsername + "=" + v.User + "\n")
	b.WriteString(KeyPassword + "=" + v.Password + "\n")
	return b.String()
}

// Write creates or truncates path and writes the rendered block. The file
// handle is closed on every path; the first error wins.
func Write(path string, t Target, v Values) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := f.WriteString(Render(t, v)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read loads an existing .env file and recovers the values and target that
// produced it. Each line is split at its first '=' and the value is taken
// verbatim, the inverse of Render; dotenv quoting and comments do not apply.
func Read(path string) (Values, Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Values{}, Target{}, fmt.Errorf("read %s: %w", path, err)
	}

	env := make(map[string]string, 3)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case KeyURL, KeyUsername, KeyPassword:
			if _, seen := env[key]; !seen {
				env[key] = value
			}
		}
	}

	for _, key := range []string{KeyURL, KeyUsername, KeyPassword} {
		if _, ok := env[key]; !ok {
			return Values{}, Target{}, fmt.Errorf("%s: %w: %s", path, ErrMissingKey, key)
		}
	}

	t, name, err := ParseJDBCURL(env[KeyURL])
	if err != nil {
		return Values{}, Target{}, fmt.Errorf("%s: %w", path, err)
	}

	return Values{
		Name:     name,
		User:     env[KeyUsername],
		Password: env[KeyPassword],
	}, t, nil
}

// ParseJDBCURL splits jdbc:postgresql://host:port/db into its parts. The
// port defaults to 5432 when omitted.
func ParseJDBCURL(raw string) (Target, string, error) {
	rest, ok := strings.CutPrefix(raw, jdbcPrefix)
	if !ok {
		return Target{}, "", fmt.Errorf("%w: %q lacks %s prefix", ErrInvalidURL, raw, jdbcPrefix)
	}

	hostport, name, ok := strings.Cut(rest, "/")
	if !ok {
		return Target{}, "", fmt.Errorf("%w: %q has no database path", ErrInvalidURL, raw)
	}

	t, err := parseHostPort(hostport)
	if err != nil {
		return Target{}, "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}

	return t, name, nil
}

// parseHostPort accepts host, host:port, [v6] and [v6]:port. The port
// defaults to 5432.
func parseHostPort(hostport string) (Target, error) {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		// No port
		switch {
		case strings.HasPrefix(hostport, "[") && strings.HasSuffix(hostport, "]"):
			host = hostport[1 : len(hostport)-1]
		case strings.Contains(hostport, ":"):
			return Target{}, err
		default:
			host = hostport
		}
		port = strconv.Itoa(DefaultPort)
	}

	if host == "" {
		return Target{}, errors.New("no host")
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return Target{}, fmt.Errorf("bad port %q", port)
	}
	return Target{Host: host, Port: p}, nil
}

// ConnString builds a postgres:// URL usable by pgx from the same settings.
func ConnString(t Target, v Values, sslmode string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   t.Addr(),
		Path:   "/" + v.Name,
	}
	if v.Password != "" {
		u.User = url.UserPassword(v.User, v.Password)
	} else if v.User != "" {
		u.User = url.User(v.User)
	}
	if sslmode != "" {
		u.RawQuery = url.Values{"sslmode": {sslmode}}.Encode()
	}
	return u.String()
}
