package service

import (
	"context"
	"encoding/json"
	"log"

	"code-playground-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// FrameSender delivers a marshalled frame to every device a user has
// connected. The websocket hub implements it.
type FrameSender interface {
	Send(userID uuid.UUID, data []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the project-saved topic and fans each save out
// to the owner's connected devices, so a save on one device shows up on
// the others.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sender    FrameSender
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sender FrameSender,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sender:    sender,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload struct {
		dto.SavedFrame
		UserId uuid.UUID `json:"user_id"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal project-saved message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.sender != nil {
		frame, err := json.Marshal(payload.SavedFrame)
		if err != nil {
			msg.Ack()
			return
		}
		cs.sender.Send(payload.UserId, frame)
	}

	msg.Ack()
}
