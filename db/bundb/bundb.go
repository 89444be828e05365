package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	"github.com/erik-onofrej/runportal-2026-sub000/config"
)

// DBService bundles the per-module repositories over one bun connection.
type DBService struct {
	RegistrationDB *registrationdb.RegistrationDBImpl
	RaceDB         *racedb.RaceDBImpl
	ResultDB       *resultdb.ResultDBImpl
	db             *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&registrationdb.Registration{})
	db.RegisterModel(&racedb.Race{})
	db.RegisterModel(&resultdb.Result{})

	return &DBService{
		RegistrationDB: &registrationdb.RegistrationDBImpl{DB: db},
		RaceDB:         &racedb.RaceDBImpl{DB: db},
		ResultDB:       &resultdb.ResultDBImpl{DB: db},
		db:             db,
	}, nil
}

func pgConn(dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
