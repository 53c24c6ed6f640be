package service

import (
	"context"

	"code-playground-be/internal/pkg/logger"
	"code-playground-be/pkg/events"
	pktNats "code-playground-be/pkg/nats"
)

type IActivityService interface {
	Start() error
}

// activityService drains the external event bus into the activity log:
// sign-ins, sign-outs and saved snapshots all leave a durable trace.
type activityService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewActivityService(subscriber *pktNats.Subscriber, log logger.ILogger) IActivityService {
	return &activityService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *activityService) Start() error {
	return s.subscriber.Subscribe("events.>", "activity-log", func(ctx context.Context, event events.Event) error {
		s.logger.Info("Activity", event.EventType(), event.Payload())
		return nil
	})
}
