package uuid

import (
	"github.com/google/uuid"

	exchange "github.com/Noozen/Currency-Exchange"
)

type IDService struct{}

func (ids *IDService) NewID() exchange.ID {
	return uuid.New()
}

func (ids *IDService) NewIDFromString(id string) (exchange.ID, error) {
	return uuid.Parse(id)
}
