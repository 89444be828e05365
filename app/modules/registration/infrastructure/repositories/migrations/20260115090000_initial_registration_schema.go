package registrationmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating registrations table...")

		if _, err := db.NewCreateTable().Model((*registrationdb.Registration)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Bib numbers are reused between races, so uniqueness is per race.
		if _, err := db.NewCreateIndex().
			Model((*registrationdb.Registration)(nil)).
			Index("registrations_race_bib_unique").
			Unique().
			Column("race_id", "bib_number").
			Where("bib_number IS NOT NULL").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*registrationdb.Registration)(nil)).
			Index("registrations_race_id_idx").
			Column("race_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Registrations table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping registrations table...")

		if _, err := db.NewDropTable().Model((*registrationdb.Registration)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Registrations table dropped successfully!")
		return nil
	})
}
