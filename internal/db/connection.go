package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coptic/envgen/internal/envfile"
	"github.com/coptic/envgen/internal/logger"
)

// CheckConfig describes a connectivity check against the database named in
// an .env file.
type CheckConfig struct {
	Target  envfile.Target
	Values  envfile.Values
	SSLMode string
	Timeout time.Duration
	// Retries is the number of extra attempts after the first failure.
	Retries int
}

// ServerInfo is what a successful check reports.
type ServerInfo struct {
	Version  string
	Database string
	User     string
	Attempts int
}

// Check opens a short-lived pool, validates it and returns server details.
func Check(ctx context.Context, cfg CheckConfig) (ServerInfo, error) {
	cfg.Values.Password = ResolvePassword(cfg.Values.Password)

	state := NewReconnectionState(cfg.Retries)
	for {
		info, err := checkOnce(ctx, cfg)
		if err == nil {
			info.Attempts = state.Attempt + 1
			return info, nil
		}

		if !state.NextAttempt() {
			return ServerInfo{}, err
		}

		logger.Warn("Connection check failed, retrying",
			"attempt", state.Attempt,
			"delay", state.NextDelay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ServerInfo{}, ctx.Err()
		case <-time.After(state.NextDelay):
		}
	}
}

func checkOnce(ctx context.Context, cfg CheckConfig) (ServerInfo, error) {
	logger.Debug("Checking database connection",
		"host", cfg.Target.Host,
		"port", cfg.Target.Port,
		"database", cfg.Values.Name,
		"user", cfg.Values.User,
		"sslmode", cfg.SSLMode,
	)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	poolConfig, err := pgxpool.ParseConfig(envfile.ConnString(cfg.Target, cfg.Values, cfg.SSLMode))
	if err != nil {
		logger.Error("Failed to parse connection string", "error", err)
		return ServerInfo{}, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = 1
	poolConfig.MinConns = 0
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "envgen"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	var info ServerInfo
	err = pool.QueryRow(ctx, "SELECT version(), current_database(), current_user").
		Scan(&info.Version, &info.Database, &info.User)
	if err != nil {
		logger.Error("Connection validation failed",
			"host", cfg.Target.Host,
			"port", cfg.Target.Port,
			"error", err,
		)
		return ServerInfo{}, fmt.Errorf(
			"connection failed: ensure PostgreSQL is running on %s:%d (error: %w)",
			cfg.Target.Host,
			cfg.Target.Port,
			err,
		)
	}

	logger.Info("Database connection check succeeded",
		"host", cfg.Target.Host,
		"port", cfg.Target.Port,
		"database", info.Database,
	)

	return info, nil
}
