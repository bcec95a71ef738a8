package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"drivebook/models"
	"drivebook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingConfirmation = "booking:confirmation"

// AsynqNotificationService enqueues notification tasks on Redis via asynq.
type AsynqNotificationService struct {
	Client *asynq.Client
}

// NewAsynqNotificationService creates the asynq-backed notification service.
func NewAsynqNotificationService(redisOpt asynq.RedisClientOpt) *AsynqNotificationService {
	return &AsynqNotificationService{Client: asynq.NewClient(redisOpt)}
}

// EnqueueBookingConfirmation schedules a confirmation for delivery.
func (s *AsynqNotificationService) EnqueueBookingConfirmation(booking models.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingConfirmation, payload)
	if _, err := s.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue booking confirmation: %w", err)
	}
	return nil
}

// LogSender is the default Sender: it logs the confirmation instead of
// talking to an email gateway. Swapped out in production wiring.
type LogSender struct{}

func (LogSender) SendBookingConfirmation(ctx context.Context, booking models.Booking) error {
	utils.GetLogger().Info("booking confirmation",
		zap.String("bookingID", booking.ID),
		zap.String("learner", booking.LearnerEmail),
		zap.String("service", booking.ServiceName),
		zap.Time("slotStart", booking.SlotStart))
	return nil
}
