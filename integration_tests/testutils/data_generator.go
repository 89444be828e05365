// Package testutils provides deterministic fake data for tests: registration
// snapshots and timing files in the shapes real timing vendors export.
package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// TestDataGenerator creates test data. Seed it for reproducible runs.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a new test data generator with an optional
// seed. Without a seed the data differs per run.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s))}
}

// GenerateRace creates a race with a plausible distance.
func (g *TestDataGenerator) GenerateRace() racedb.Race {
	distances := []float64{5, 10, 21.0975, 42.195}
	return racedb.Race{
		ID:         sharedtypes.RaceID(uuid.New()),
		Name:       g.faker.City() + " " + g.faker.RandomString([]string{"5K", "10K", "Half Marathon", "Marathon"}),
		DistanceKm: distances[g.faker.Number(0, len(distances)-1)],
		CreatedAt:  time.Now().UTC(),
	}
}

// GenerateRegistrations creates n registrations for the race with unique
// registration numbers and bib numbers. A few registrations get no bib, as
// happens when runners skip packet pickup.
func (g *TestDataGenerator) GenerateRegistrations(raceID sharedtypes.RaceID, n int) []registrationdb.Registration {
	categoryIDs := []sharedtypes.CategoryID{
		sharedtypes.CategoryID(uuid.New()),
		sharedtypes.CategoryID(uuid.New()),
		sharedtypes.CategoryID(uuid.New()),
	}
	categoryNames := []string{"M18-39", "F18-39", "M40+"}

	regs := make([]registrationdb.Registration, 0, n)
	for i := 0; i < n; i++ {
		catIdx := g.faker.Number(0, len(categoryIDs)-1)
		reg := registrationdb.Registration{
			ID:                 sharedtypes.RegistrationID(uuid.New()),
			RaceID:             raceID,
			RegistrationNumber: fmt.Sprintf("R-%04d", i+1),
			FirstName:          g.faker.FirstName(),
			LastName:           g.faker.LastName(),
			CategoryID:         categoryIDs[catIdx],
			CategoryName:       categoryNames[catIdx],
			CreatedAt:          time.Now().UTC(),
		}
		if g.faker.Number(0, 9) > 0 {
			bib := fmt.Sprintf("%d", i+1)
			reg.BibNumber = &bib
		}
		regs = append(regs, reg)
	}
	return regs
}

// GenerateTimingCSV renders a timing export covering every registration.
// dnfEvery marks every n-th row dnf with no finish time; zero disables that.
func (g *TestDataGenerator) GenerateTimingCSV(regs []registrationdb.Registration, dnfEvery int) []byte {
	var sb strings.Builder
	sb.WriteString("Registration Number,First Name,Last Name,Finish Time,Status\n")

	for i, reg := range regs {
		status := "finished"
		finish := FormatClockTime(g.faker.Number(1200, 14400))
		if dnfEvery > 0 && (i+1)%dnfEvery == 0 {
			status = "dnf"
			finish = ""
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s\n", reg.RegistrationNumber, reg.FirstName, reg.LastName, finish, status))
	}
	return []byte(sb.String())
}

// FormatClockTime renders seconds as H:MM:SS, or MM:SS under an hour.
func FormatClockTime(totalSeconds int) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
