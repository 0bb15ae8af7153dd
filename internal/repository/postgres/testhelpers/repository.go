package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewStopSourceForTest creates a stop source backed by the test database.
func NewStopSourceForTest(db *sqlx.DB, logger *zap.Logger, districts []string) repository.StopSource {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewStopSource(pgDB, districts)
}
