package models

// Calendar provider selectors. Each partner has exactly one; the stored
// selector decides which calendar source implementation serves the partner.
const (
	CalendarProviderGoogle  = "google"
	CalendarProviderUnified = "unified"
)

// Service is a bookable offering in a partner's catalogue.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
}

// Partner represents an instructor listed on the marketplace.
type Partner struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Email             string    `bson:"email" json:"email"`
	Description       string    `bson:"description" json:"description,omitempty"`
	Rating            float64   `bson:"rating" json:"rating"`
	CalendarProvider  string    `bson:"calendarProvider" json:"calendarProvider"`
	CredentialRef     string    `bson:"credentialRef" json:"-"` // opaque handle: google token document id or unified account id
	WebhookSecretHash string    `bson:"webhookSecretHash,omitempty" json:"-"`
	ServiceAreas      []string  `bson:"serviceAreas" json:"serviceAreas"` // 5-digit zip codes
	Services          []Service `bson:"services" json:"services,omitempty"`
}

// ServiceByID looks up a catalogue entry.
func (p *Partner) ServiceByID(id string) (Service, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
