package racemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating races table...")

		if _, err := db.NewCreateTable().Model((*racedb.Race)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Races table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping races table...")

		if _, err := db.NewDropTable().Model((*racedb.Race)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Races table dropped successfully!")
		return nil
	})
}
