package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	pkgAuth "github.com/polkiloo/gopos/internal/pkg/auth"
	"github.com/polkiloo/gopos/migrations"
)

const usage = `usage:
  gopos-migrate up [-d DSN]
  gopos-migrate down [-d DSN]
  gopos-migrate seed-staff -email EMAIL -password PASSWORD [-name NAME] [-role ROLE] [-d DSN]`

const (
	cmdUp        = "up"
	cmdDown      = "down"
	cmdSeedStaff = "seed-staff"
)

type command struct {
	name     string
	dsn      string
	email    string
	staff    string
	password string
	role     string
}

func parseArgs(args []string, lookup func(string) (string, bool)) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}

	cmd := command{name: args[0], role: "STAFF"}
	if v, ok := lookup("DATABASE_URI"); ok {
		cmd.dsn = v
	}
	if v, ok := lookup("STAFF_PASSWORD"); ok {
		cmd.password = v
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cmd.dsn, "d", cmd.dsn, "PostgreSQL DSN")

	switch cmd.name {
	case cmdUp, cmdDown:
	case cmdSeedStaff:
		fs.StringVar(&cmd.email, "email", "", "staff email")
		fs.StringVar(&cmd.staff, "name", "", "staff display name")
		fs.StringVar(&cmd.password, "password", cmd.password, "staff password")
		fs.StringVar(&cmd.role, "role", cmd.role, "staff role")
	default:
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return command{}, fmt.Errorf("parse flags: %w", err)
	}

	if cmd.dsn == "" {
		return command{}, errors.New("database DSN must be provided")
	}
	if cmd.name == cmdSeedStaff {
		cmd.email = strings.ToLower(strings.TrimSpace(cmd.email))
		if cmd.email == "" || cmd.password == "" {
			return command{}, errors.New("seed-staff requires -email and -password")
		}
		if cmd.staff == "" {
			cmd.staff = cmd.email
		}
	}
	return cmd, nil
}

type migrator struct {
	db     *sql.DB
	hasher pkgAuth.PasswordHasher
	newID  func() string
	logger *slog.Logger
}

func newMigrator(db *sql.DB, logger *slog.Logger) *migrator {
	return &migrator{db: db, hasher: pkgAuth.NewBcryptHasher(0), newID: uuid.NewString, logger: logger}
}

func (m *migrator) run(ctx context.Context, cmd command) error {
	switch cmd.name {
	case cmdUp:
		return m.migrate(ctx, migrations.Up)
	case cmdDown:
		return m.migrate(ctx, migrations.Down)
	case cmdSeedStaff:
		return m.seedStaff(ctx, cmd)
	}
	return fmt.Errorf("unknown command %q", cmd.name)
}

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func (m *migrator) migrate(ctx context.Context, direction migrations.Direction) error {
	scripts, err := migrations.Load(direction)
	if err != nil {
		return err
	}
	if _, err := m.db.ExecContext(ctx, createVersionsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := 0
	for _, script := range scripts {
		done, err := m.apply(ctx, direction, script)
		if err != nil {
			return err
		}
		if done {
			applied++
			m.logger.Info("migration applied", slog.String("name", script.Name), slog.String("direction", string(direction)))
		}
	}
	m.logger.Info("migrations finished", slog.Int("applied", applied), slog.String("direction", string(direction)))
	return nil
}

// apply runs one script and records it in schema_migrations within a single transaction.
func (m *migrator) apply(ctx context.Context, direction migrations.Direction, script migrations.Migration) (done bool, err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin %s: %w", script.Name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, script.Name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", script.Name, err)
	}
	if (direction == migrations.Up) == exists {
		return false, tx.Rollback()
	}

	if _, err = tx.ExecContext(ctx, script.SQL); err != nil {
		return false, fmt.Errorf("execute %s: %w", script.Name, err)
	}

	if direction == migrations.Up {
		_, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, script.Name)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE name = $1`, script.Name)
	}
	if err != nil {
		return false, fmt.Errorf("record %s: %w", script.Name, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit %s: %w", script.Name, err)
	}
	return true, nil
}

const upsertStaff = `INSERT INTO users (id, email, name, role, password_hash)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, password_hash = EXCLUDED.password_hash`

func (m *migrator) seedStaff(ctx context.Context, cmd command) error {
	hash, err := m.hasher.Hash(cmd.password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := m.db.ExecContext(ctx, upsertStaff, m.newID(), cmd.email, cmd.staff, cmd.role, hash); err != nil {
		return fmt.Errorf("upsert staff: %w", err)
	}
	m.logger.Info("staff account saved", slog.String("email", cmd.email), slog.String("role", cmd.role))
	return nil
}
