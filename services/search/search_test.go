package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"drivebook/models"
	"drivebook/services/availability"
	"drivebook/services/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePartnerRepo struct {
	byZip map[string][]models.Partner
}

func (f *fakePartnerRepo) GetByID(id string) (*models.Partner, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePartnerRepo) GetByEmail(email string) (*models.Partner, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePartnerRepo) GetByZip(zip string) ([]models.Partner, error) {
	return f.byZip[zip], nil
}
func (f *fakePartnerRepo) GetAll() ([]models.Partner, error)      { return nil, nil }
func (f *fakePartnerRepo) Create(partner *models.Partner) error   { return nil }
func (f *fakePartnerRepo) Update(partner *models.Partner) error   { return nil }
func (f *fakePartnerRepo) Delete(id string) error                 { return nil }

type fakeLocationSvc struct {
	loc models.Location
}

func (f *fakeLocationSvc) ResolveZip(ctx context.Context, zip string) (*models.Location, error) {
	loc := f.loc
	loc.ZipCode = zip
	return &loc, nil
}

// fakeSource serves canned busy intervals or a canned error, keyed by partner.
type fakeSource struct {
	busy map[string][]models.BusyInterval
	errs map[string]error
}

func (f *fakeSource) FetchBusyIntervals(ctx context.Context, partner models.Partner, windowStart, windowEnd time.Time) ([]models.BusyInterval, error) {
	if err := f.errs[partner.ID]; err != nil {
		return nil, err
	}
	return f.busy[partner.ID], nil
}
func (f *fakeSource) CreateEvent(ctx context.Context, partner models.Partner, ev calendar.Event) (string, error) {
	return "", errors.New("not implemented")
}
func (f *fakeSource) ResolveConnectAuth(ctx context.Context, partner models.Partner) (calendar.ConnectAuth, error) {
	return calendar.ConnectAuth{}, errors.New("not implemented")
}

type fakeResolver struct {
	source calendar.Source
	err    error
}

func (f *fakeResolver) ForPartner(partner models.Partner) (calendar.Source, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.source, nil
}

func searchPartner(id string) models.Partner {
	return models.Partner{
		ID:               id,
		Name:             "Instructor " + id,
		CalendarProvider: models.CalendarProviderGoogle,
		CredentialRef:    "cred-" + id,
		ServiceAreas:     []string{"10001"},
	}
}

func newTestService(repo *fakePartnerRepo, resolver SourceResolver) *DefaultSearchService {
	return &DefaultSearchService{
		PartnerRepo: repo,
		LocationSvc: &fakeLocationSvc{loc: models.Location{City: "New York", State: "NY", Timezone: "America/New_York"}},
		Sources:     resolver,
		Engine:      availability.NewEngine(models.SlotTemplate{}),
		Timeout:     5 * time.Second,
	}
}

var searchDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func TestSearchNoPartners(t *testing.T) {
	svc := newTestService(&fakePartnerRepo{byZip: map[string][]models.Partner{}}, &fakeResolver{source: &fakeSource{}})

	result, err := svc.SearchAvailability(context.Background(), "99999", searchDate)
	require.NoError(t, err)
	assert.Equal(t, "99999", result.ZipCode)
	assert.Empty(t, result.Partners)
}

func TestSearchFreePartnerGetsFullGrid(t *testing.T) {
	repo := &fakePartnerRepo{byZip: map[string][]models.Partner{
		"10001": {searchPartner("p1")},
	}}
	svc := newTestService(repo, &fakeResolver{source: &fakeSource{}})

	result, err := svc.SearchAvailability(context.Background(), "10001", searchDate)
	require.NoError(t, err)
	require.Len(t, result.Partners, 1)

	entry := result.Partners[0]
	assert.Nil(t, entry.Error)
	assert.Len(t, entry.Slots, 8)
	assert.Equal(t, "p1", entry.Slots[0].PartnerID)
}

func TestSearchFullyBookedPartnerIsEmptyNotError(t *testing.T) {
	tz, _ := time.LoadLocation("America/New_York")
	repo := &fakePartnerRepo{byZip: map[string][]models.Partner{
		"10001": {searchPartner("p1")},
	}}
	source := &fakeSource{busy: map[string][]models.BusyInterval{
		"p1": {{
			Start: time.Date(2026, 6, 15, 9, 0, 0, 0, tz),
			End:   time.Date(2026, 6, 15, 17, 0, 0, 0, tz),
		}},
	}}
	svc := newTestService(repo, &fakeResolver{source: source})

	result, err := svc.SearchAvailability(context.Background(), "10001", searchDate)
	require.NoError(t, err)
	require.Len(t, result.Partners, 1)
	assert.Nil(t, result.Partners[0].Error)
	assert.Empty(t, result.Partners[0].Slots)
}

func TestSearchPartnerErrorDoesNotAffectSiblings(t *testing.T) {
	repo := &fakePartnerRepo{byZip: map[string][]models.Partner{
		"10001": {searchPartner("p1"), searchPartner("p2"), searchPartner("p3")},
	}}
	source := &fakeSource{errs: map[string]error{
		"p2": &calendar.AuthenticationError{Provider: "google", PartnerID: "p2", Err: errors.New("token revoked")},
	}}
	svc := newTestService(repo, &fakeResolver{source: source})

	result, err := svc.SearchAvailability(context.Background(), "10001", searchDate)
	require.NoError(t, err)
	require.Len(t, result.Partners, 3)

	// Result order follows the matched-partner order.
	assert.Equal(t, "p1", result.Partners[0].Partner.ID)
	assert.Equal(t, "p2", result.Partners[1].Partner.ID)
	assert.Equal(t, "p3", result.Partners[2].Partner.ID)

	assert.Nil(t, result.Partners[0].Error)
	assert.Len(t, result.Partners[0].Slots, 8)

	// The failed partner reports an error entry, never an empty slot list
	// masquerading as fully booked.
	require.NotNil(t, result.Partners[1].Error)
	assert.Equal(t, "authentication", result.Partners[1].Error.Kind)
	assert.Empty(t, result.Partners[1].Slots)

	assert.Nil(t, result.Partners[2].Error)
	assert.Len(t, result.Partners[2].Slots, 8)
}

func TestSearchUnavailableSourceKind(t *testing.T) {
	repo := &fakePartnerRepo{byZip: map[string][]models.Partner{
		"10001": {searchPartner("p1")},
	}}
	source := &fakeSource{errs: map[string]error{
		"p1": &calendar.SourceUnavailableError{Provider: "unified", PartnerID: "p1", Err: errors.New("bad gateway")},
	}}
	svc := newTestService(repo, &fakeResolver{source: source})

	result, err := svc.SearchAvailability(context.Background(), "10001", searchDate)
	require.NoError(t, err)
	require.NotNil(t, result.Partners[0].Error)
	assert.Equal(t, "unavailable", result.Partners[0].Error.Kind)
}

func TestSearchResolverFailureIsPerPartner(t *testing.T) {
	repo := &fakePartnerRepo{byZip: map[string][]models.Partner{
		"10001": {searchPartner("p1")},
	}}
	svc := newTestService(repo, &fakeResolver{err: errors.New("unknown provider")})

	result, err := svc.SearchAvailability(context.Background(), "10001", searchDate)
	require.NoError(t, err)
	require.NotNil(t, result.Partners[0].Error)
	assert.Equal(t, "unavailable", result.Partners[0].Error.Kind)
}
