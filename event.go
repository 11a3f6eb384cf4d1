package exchange

import (
	"fmt"
)

type Event struct {
	User    *User
	Payload string
}

func NewOrderFulfilledEvent(
	user *User,
	record TransactionRecord,
) *Event {
	return &Event{
		User: user,
		Payload: fmt.Sprintf(
			"Order has been fulfilled:\n"+
				"- User: %v\n"+
				"- Transaction number: %v\n"+
				"- Order: %v",
			user.Email,
			record.Number,
			record.Description,
		),
	}
}

type EventService interface {
	Publish(event *Event)
}
