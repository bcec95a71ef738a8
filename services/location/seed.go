package location

import (
	"fmt"

	locationRepo "drivebook/database/repository/location"
	"drivebook/models"
)

// SeedLocations upserts the starter zip-location table. Idempotent.
func SeedLocations(repo locationRepo.LocationRepository) error {
	seed := []models.Location{
		{ZipCode: "10001", City: "New York", State: "NY", Timezone: "America/New_York", Display: "New York, NY"},
		{ZipCode: "10002", City: "New York", State: "NY", Timezone: "America/New_York", Display: "New York, NY"},
		{ZipCode: "60601", City: "Chicago", State: "IL", Timezone: "America/Chicago", Display: "Chicago, IL"},
		{ZipCode: "94103", City: "San Francisco", State: "CA", Timezone: "America/Los_Angeles", Display: "San Francisco, CA"},
	}
	for i := range seed {
		if err := repo.Upsert(&seed[i]); err != nil {
			return fmt.Errorf("failed to seed location %s: %w", seed[i].ZipCode, err)
		}
	}
	return nil
}
