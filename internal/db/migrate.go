package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending migration embedded in the binary.
func Migrate(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log.Sugar().Named("goose")})
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...any) { l.s.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...any) { l.s.Infof(format, v...) }
