package resultmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating results table...")

		if _, err := db.NewCreateTable().Model((*resultdb.Result)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Placement recomputation reads finished results per race and per
		// category; both paths filter on race_id first.
		if _, err := db.NewCreateIndex().
			Model((*resultdb.Result)(nil)).
			Index("results_race_id_idx").
			Column("race_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*resultdb.Result)(nil)).
			Index("results_race_category_idx").
			Column("race_id", "category_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Results table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping results table...")

		if _, err := db.NewDropTable().Model((*resultdb.Result)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Results table dropped successfully!")
		return nil
	})
}
