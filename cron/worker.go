package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"drivebook/config"
	"drivebook/models"
	"drivebook/services/notification"

	"github.com/hibiken/asynq"
)

// InitConfirmationWorker runs the async worker in background.
func InitConfirmationWorker(sender notification.Sender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingConfirmation, handleConfirmationTask(sender))

	go func() {
		log.Println("[ConfirmationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleConfirmationTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var booking models.Booking
		if err := json.Unmarshal(task.Payload(), &booking); err != nil {
			log.Printf("[ConfirmationWorker] invalid payload: %v", err)
			return err
		}
		if err := sender.SendBookingConfirmation(ctx, booking); err != nil {
			log.Printf("[ConfirmationWorker] failed to send confirmation for %s: %v", booking.ID, err)
			return err
		}
		return nil
	}
}
