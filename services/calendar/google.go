package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"drivebook/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleSource talks to the Google Calendar API with per-partner OAuth
// credentials.
type GoogleSource struct {
	oauthConf *oauth2.Config
	tokens    TokenStore
	states    *StateCodec
}

// NewGoogleSource builds a GoogleSource from the OAuth application
// credentials, a token store, and the connect-state codec.
func NewGoogleSource(clientID, clientSecret, redirectURL string, tokens TokenStore, states *StateCodec) *GoogleSource {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{gcal.CalendarScope},
		Endpoint:     google.Endpoint,
	}
	return &GoogleSource{oauthConf: conf, tokens: tokens, states: states}
}

func (g *GoogleSource) service(ctx context.Context, partner models.Partner) (*gcal.Service, error) {
	tok, err := g.tokens.Get(ctx, partner.CredentialRef)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, &AuthenticationError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID, Err: err}
		}
		return nil, &SourceUnavailableError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID, Err: err}
	}
	ts := newSavingTokenSource(g.oauthConf.TokenSource(ctx, tok), g.tokens, partner.CredentialRef, tok)
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return svc, nil
}

// classify maps a Google API failure onto the error taxonomy.
func (g *GoogleSource) classify(partner models.Partner, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &AuthenticationError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID, Err: err}
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return &AuthenticationError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID, Err: err}
		}
	}
	return &SourceUnavailableError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID, Err: err}
}

// FetchBusyIntervals queries the partner's primary calendar for busy time
// over the given UTC window. Returned intervals are zone-aware instants
// parsed from the provider's RFC3339 payload.
func (g *GoogleSource) FetchBusyIntervals(ctx context.Context, partner models.Partner, windowStart, windowEnd time.Time) ([]models.BusyInterval, error) {
	svc, err := g.service(ctx, partner)
	if err != nil {
		return nil, err
	}

	req := &gcal.FreeBusyRequest{
		TimeMin: windowStart.Format(time.RFC3339),
		TimeMax: windowEnd.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: "primary"}},
	}
	resp, err := svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, g.classify(partner, err)
	}

	cal, ok := resp.Calendars["primary"]
	if !ok {
		return nil, nil
	}
	var busy []models.BusyInterval
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, &SourceUnavailableError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID,
				Err: fmt.Errorf("bad busy start %q: %w", period.Start, err)}
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, &SourceUnavailableError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID,
				Err: fmt.Errorf("bad busy end %q: %w", period.End, err)}
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}

// CreateEvent inserts the booking on the partner's primary calendar.
func (g *GoogleSource) CreateEvent(ctx context.Context, partner models.Partner, ev Event) (string, error) {
	svc, err := g.service(ctx, partner)
	if err != nil {
		return "", err
	}

	googleEvent := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
		},
	}
	if ev.Attendee != "" {
		googleEvent.Attendees = []*gcal.EventAttendee{{Email: ev.Attendee}}
	}

	created, err := svc.Events.Insert("primary", googleEvent).Context(ctx).Do()
	if err != nil {
		return "", g.classify(partner, err)
	}
	return created.Id, nil
}

// ResolveConnectAuth returns the consent URL when no usable token exists.
func (g *GoogleSource) ResolveConnectAuth(ctx context.Context, partner models.Partner) (ConnectAuth, error) {
	tok, err := g.tokens.Get(ctx, partner.CredentialRef)
	if err == nil && tok.RefreshToken != "" {
		return ConnectAuth{Completed: true}, nil
	}
	if err != nil && !errors.Is(err, ErrTokenNotFound) {
		return ConnectAuth{}, &SourceUnavailableError{Provider: models.CalendarProviderGoogle, PartnerID: partner.ID, Err: err}
	}
	state, err := g.states.Sign(partner.ID, partner.CredentialRef)
	if err != nil {
		return ConnectAuth{}, err
	}
	url := g.oauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return ConnectAuth{URL: url}, nil
}

// Exchange completes the OAuth flow: trades the authorization code for a
// token and persists it under the credential handle.
func (g *GoogleSource) Exchange(ctx context.Context, credentialRef, code string) error {
	tok, err := g.oauthConf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return g.tokens.Save(ctx, credentialRef, tok)
}
