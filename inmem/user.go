package inmem

import (
	"sync"

	exchange "github.com/Noozen/Currency-Exchange"
)

type UserRepository struct {
	usersMutex sync.RWMutex
	users      map[string]*exchange.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*exchange.User),
	}
}

func (ur *UserRepository) CreateUser(user *exchange.User) error {
	ur.usersMutex.Lock()
	defer ur.usersMutex.Unlock()

	if _, exists := ur.users[user.Email]; exists {
		return exchange.ErrUserAlreadyExists
	}

	ur.users[user.Email] = user

	return nil
}

func (ur *UserRepository) UserByEmail(email string) (*exchange.User, error) {
	ur.usersMutex.RLock()
	defer ur.usersMutex.RUnlock()

	user, exists := ur.users[email]
	if !exists {
		return nil, exchange.ErrUserNotFound
	}

	return user, nil
}

// UpdateWallet is a no-op; in-process users share the live wallet instance.
func (ur *UserRepository) UpdateWallet(user *exchange.User) error {
	return nil
}
