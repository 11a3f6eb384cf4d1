package exchange

import (
	"errors"
	"fmt"
	"sync"
)

var ErrUserAlreadyExists = errors.New("user already exists")

var ErrUserNotFound = errors.New("user not found")

// User owns exactly one wallet and a private, ordered history of its own
// fulfilled orders. The history is independent of the global ledger's
// sequence numbers.
type User struct {
	ID       ID
	Name     string
	Email    string
	Password string // opaque placeholder; hashing is an auth layer concern

	Wallet *Wallet

	historyMutex sync.Mutex
	history      []TransactionRecord
}

func NewUser(id ID, name, email, password string) *User {
	return &User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: password,
		Wallet:   NewWallet(),
	}
}

func (u *User) NoteOrder(record TransactionRecord) {
	u.historyMutex.Lock()
	defer u.historyMutex.Unlock()

	u.history = append(u.history, record)
}

// OrderHistory returns a snapshot of the user's fulfilled orders, oldest
// first.
func (u *User) OrderHistory() []TransactionRecord {
	u.historyMutex.Lock()
	defer u.historyMutex.Unlock()

	snapshot := make([]TransactionRecord, len(u.history))
	copy(snapshot, u.history)

	return snapshot
}

type UserRepository interface {
	// CreateUser persists a new user. It returns ErrUserAlreadyExists when
	// the user's email is already registered.
	CreateUser(user *User) error

	UserByEmail(email string) (*User, error)

	// UpdateWallet persists the current balance snapshot of the user's
	// wallet.
	UpdateWallet(user *User) error
}

// Registry registers users and resolves them by email.
type Registry struct {
	userRepository UserRepository
	idService      IDService
}

func NewRegistry(
	userRepository UserRepository,
	idService IDService,
) *Registry {
	return &Registry{
		userRepository: userRepository,
		idService:      idService,
	}
}

// RegisterUser creates a user together with an empty wallet. It fails with
// ErrUserAlreadyExists when the email is already taken.
func (r *Registry) RegisterUser(
	name, email, password string,
) (*User, error) {
	user := NewUser(r.idService.NewID(), name, email, password)

	if err := r.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf(
			"could not register user [%v]: [%w]",
			email,
			err,
		)
	}

	return user, nil
}

func (r *Registry) UserByEmail(email string) (*User, error) {
	user, err := r.userRepository.UserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf(
			"could not resolve user [%v]: [%w]",
			email,
			err,
		)
	}

	return user, nil
}

// SaveWallet persists the user's wallet through the underlying repository.
func (r *Registry) SaveWallet(user *User) error {
	if err := r.userRepository.UpdateWallet(user); err != nil {
		return fmt.Errorf(
			"could not save wallet of user [%v]: [%w]",
			user.Email,
			err,
		)
	}

	return nil
}
