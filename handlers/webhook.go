package handlers

import (
	"context"
	"net/http"
	"time"

	partnerRepo "drivebook/database/repository/partner"
	"drivebook/services/partner"
	"drivebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NotificationDeduper remembers delivered notification ids so provider
// redeliveries are acked without being treated as new.
type NotificationDeduper interface {
	// FirstDelivery reports whether this notification id has not been seen
	// before, recording it as seen.
	FirstDelivery(ctx context.Context, id string) (bool, error)
}

// RedisDeduper implements NotificationDeduper with a SetNX key per
// notification id.
type RedisDeduper struct {
	Client *redis.Client
	TTL    time.Duration
}

func (d *RedisDeduper) FirstDelivery(ctx context.Context, id string) (bool, error) {
	ttl := d.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return d.Client.SetNX(ctx, "webhook:"+id, 1, ttl).Result()
}

// WebhookHandler accepts provider-pushed calendar change notifications.
// Availability is computed fresh on every search, so there is no cache to
// invalidate; the handler authenticates, dedups, and acks.
type WebhookHandler struct {
	PartnerRepo partnerRepo.PartnerRepository
	Dedup       NotificationDeduper
	Logger      *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(repo partnerRepo.PartnerRepository, dedup NotificationDeduper, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{PartnerRepo: repo, Dedup: dedup, Logger: logger}
}

type webhookNotification struct {
	PartnerID      string `json:"partnerId" binding:"required"`
	NotificationID string `json:"notificationId" binding:"required"`
	Secret         string `json:"secret" binding:"required"`
	Resource       string `json:"resource"`
}

// Handle answers POST /webhook.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var notif webhookNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid notification", err.Error())
		return
	}

	p, err := h.PartnerRepo.GetByID(notif.PartnerID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown partner", notif.PartnerID)
		return
	}
	if !partner.VerifyWebhookSecret(p, notif.Secret) {
		h.Logger.Warn("webhook secret mismatch", zap.String("partnerID", notif.PartnerID))
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "webhook secret mismatch")
		return
	}

	// Providers redeliver; ack duplicates without logging them as new.
	fresh, err := h.Dedup.FirstDelivery(c.Request.Context(), notif.NotificationID)
	if err != nil {
		h.Logger.Warn("webhook dedup check failed", zap.Error(err))
	}
	if fresh {
		h.Logger.Info("calendar change notification",
			zap.String("partnerID", notif.PartnerID),
			zap.String("resource", notif.Resource))
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
