package models

// Location is the resolved service area for a zip code.
type Location struct {
	ZipCode  string `bson:"zipCode" json:"zipCode"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	Timezone string `bson:"timezone" json:"timezone"` // IANA zone name, e.g. "America/New_York"
	Display  string `bson:"display" json:"display"`   // e.g. "New York, NY"
}
