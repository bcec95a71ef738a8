package partner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	partnerRepo "drivebook/database/repository/partner"
	"drivebook/models"
	"drivebook/services/calendar"
	"drivebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// JoinRequest is the partner self-registration payload.
type JoinRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Description      string `json:"description" binding:"required"`
	ZipCodes         string `json:"zipCodes" binding:"required"` // comma-separated 5-digit zips
	CalendarProvider string `json:"calendarProvider" binding:"required"`
	// WebhookSecret is the shared secret the partner's calendar provider
	// will sign change notifications with. Stored hashed.
	WebhookSecret string `json:"webhookSecret"`
}

// JoinResponse carries the created partner plus the calendar connect step.
type JoinResponse struct {
	Partner     models.Partner       `json:"partner"`
	ConnectAuth calendar.ConnectAuth `json:"connectAuth"`
}

// PartnerService manages partner registration and calendar connection.
type PartnerService interface {
	Join(ctx context.Context, req JoinRequest) (*JoinResponse, error)
	CompleteGoogleConnect(ctx context.Context, state, code string) error
}

// DefaultPartnerService implements PartnerService.
type DefaultPartnerService struct {
	Repo    partnerRepo.PartnerRepository
	Sources *calendar.Factory
	Google  *calendar.GoogleSource
	States  *calendar.StateCodec
}

// Join validates and persists a new partner, then resolves what the partner
// must do to connect their calendar.
func (s *DefaultPartnerService) Join(ctx context.Context, req JoinRequest) (*JoinResponse, error) {
	logger := utils.GetLogger()

	if req.CalendarProvider != models.CalendarProviderGoogle && req.CalendarProvider != models.CalendarProviderUnified {
		return nil, fmt.Errorf("unsupported calendar provider: %s", req.CalendarProvider)
	}

	var zips []string
	for _, raw := range strings.Split(req.ZipCodes, ",") {
		z := strings.TrimSpace(raw)
		if zipPattern.MatchString(z) {
			zips = append(zips, z)
		}
	}
	if len(zips) == 0 {
		return nil, fmt.Errorf("at least one valid 5-digit zip code is required")
	}

	partner := models.Partner{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Email:            req.Email,
		Description:      req.Description,
		Rating:           4.5,
		CalendarProvider: req.CalendarProvider,
		ServiceAreas:     zips,
	}
	// The credential handle doubles as the provider-side account reference;
	// it is minted here and never changes.
	partner.CredentialRef = partner.ID

	if req.WebhookSecret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.WebhookSecret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash webhook secret: %w", err)
		}
		partner.WebhookSecretHash = string(hash)
	}

	if err := s.Repo.Create(&partner); err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	source, err := s.Sources.ForPartner(partner)
	if err != nil {
		return nil, err
	}
	connect, err := source.ResolveConnectAuth(ctx, partner)
	if err != nil {
		return nil, err
	}

	logger.Info("partner joined",
		zap.String("partnerID", partner.ID),
		zap.String("provider", partner.CalendarProvider),
		zap.Int("zips", len(zips)))
	return &JoinResponse{Partner: partner, ConnectAuth: connect}, nil
}

// CompleteGoogleConnect finishes the OAuth consent flow started by Join.
func (s *DefaultPartnerService) CompleteGoogleConnect(ctx context.Context, state, code string) error {
	partnerID, credentialRef, err := s.States.Verify(state)
	if err != nil {
		return err
	}
	if _, err := s.Repo.GetByID(partnerID); err != nil {
		return fmt.Errorf("unknown partner %s in connect state: %w", partnerID, err)
	}
	return s.Google.Exchange(ctx, credentialRef, code)
}

// VerifyWebhookSecret checks a pushed notification's shared secret against
// the partner's stored hash.
func VerifyWebhookSecret(partner *models.Partner, secret string) bool {
	if partner.WebhookSecretHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(partner.WebhookSecretHash), []byte(secret)) == nil
}
