package pubsub

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"

	exchange "github.com/Noozen/Currency-Exchange"
)

// EventService publishes wallet events on the notifications topic. Publish
// failures are logged, not returned; notifications are best-effort and must
// not fail the originating transaction.
type EventService struct {
	client *Client
	logger exchange.Logger
}

func NewEventService(client *Client, logger exchange.Logger) *EventService {
	return &EventService{client, logger}
}

func (es *EventService) Publish(event *exchange.Event) {
	es.publishOnNotificationsTopic(context.TODO(), event)
}

func (es *EventService) publishOnNotificationsTopic(
	ctx context.Context,
	event *exchange.Event,
) {
	topicLogger := es.logger.WithField("topic", "notifications")

	messageData, err := json.Marshal(&notificationEvent{
		Email:   event.User.Email,
		Payload: event.Payload,
	})
	if err != nil {
		topicLogger.Errorf("could not marshal wallet event: [%v]", err)
		return
	}

	es.publishOnTopic(
		ctx,
		es.client.notificationsTopic,
		messageData,
		topicLogger,
	)
}

func (es *EventService) publishOnTopic(
	ctx context.Context,
	topic *pubsub.Topic,
	messageData []byte,
	topicLogger exchange.Logger,
) {
	result := topic.Publish(ctx, &pubsub.Message{
		Data: messageData,
	})

	go func() {
		id, err := result.Get(ctx)
		if err != nil {
			topicLogger.Errorf(
				"could not publish wallet event: [%v]",
				err,
			)
			return
		}

		topicLogger.Infof("published wallet event with ID: [%v]", id)
	}()
}

type notificationEvent struct {
	Email   string
	Payload string
}
