package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"drivebook/models"
)

// UnifiedSource talks to a calendar-aggregation API that fronts Google,
// Outlook and iCloud accounts behind one surface. The partner's credential
// handle is the aggregator-side account id.
type UnifiedSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewUnifiedSource builds a UnifiedSource for the given API base URL and key.
func NewUnifiedSource(baseURL, apiKey string) *UnifiedSource {
	return &UnifiedSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type unifiedBusyResponse struct {
	Busy []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"busy"`
}

type unifiedEventRequest struct {
	Account     string    `json:"account"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendee    string    `json:"attendee,omitempty"`
}

type unifiedEventResponse struct {
	EventID string `json:"eventId"`
}

// classifyStatus maps an aggregator HTTP status onto the error taxonomy.
func (u *UnifiedSource) classifyStatus(partner models.Partner, status int, body []byte) error {
	err := fmt.Errorf("unified api returned %d: %s", status, bytes.TrimSpace(body))
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &AuthenticationError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID, Err: err}
	}
	return &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID, Err: err}
}

// FetchBusyIntervals queries the aggregator for the partner's busy time over
// the given UTC window.
func (u *UnifiedSource) FetchBusyIntervals(ctx context.Context, partner models.Partner, windowStart, windowEnd time.Time) ([]models.BusyInterval, error) {
	q := url.Values{}
	q.Set("account", partner.CredentialRef)
	q.Set("from", windowStart.UTC().Format(time.RFC3339))
	q.Set("to", windowEnd.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/v1/busy?%s", u.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build busy request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.apiKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, u.classifyStatus(partner, resp.StatusCode, body)
	}

	var parsed unifiedBusyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID,
			Err: fmt.Errorf("bad busy payload: %w", err)}
	}
	var busy []models.BusyInterval
	for _, b := range parsed.Busy {
		busy = append(busy, models.BusyInterval{Start: b.Start, End: b.End})
	}
	return busy, nil
}

// CreateEvent writes the booking through the aggregator.
func (u *UnifiedSource) CreateEvent(ctx context.Context, partner models.Partner, ev Event) (string, error) {
	payload := unifiedEventRequest{
		Account:     partner.CredentialRef,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       ev.Start,
		End:         ev.End,
		Attendee:    ev.Attendee,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}

	endpoint := u.baseURL + "/v1/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("failed to build event request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID, Err: err}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", u.classifyStatus(partner, resp.StatusCode, body)
	}

	var parsed unifiedEventResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &SourceUnavailableError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID,
			Err: fmt.Errorf("bad event payload: %w", err)}
	}
	return parsed.EventID, nil
}

// ResolveConnectAuth returns the aggregator's hosted connect page for the
// partner's account.
func (u *UnifiedSource) ResolveConnectAuth(ctx context.Context, partner models.Partner) (ConnectAuth, error) {
	if partner.CredentialRef == "" {
		return ConnectAuth{}, &AuthenticationError{Provider: models.CalendarProviderUnified, PartnerID: partner.ID,
			Err: fmt.Errorf("partner has no unified account id")}
	}
	return ConnectAuth{URL: fmt.Sprintf("%s/connect/%s", u.baseURL, url.PathEscape(partner.CredentialRef))}, nil
}
