package inmem

import (
	"errors"
	"testing"

	exchange "github.com/Noozen/Currency-Exchange"
	"github.com/google/uuid"
)

func TestUserRepository_CreateUser(t *testing.T) {
	repository := NewUserRepository()

	user := testUser("test@test.com")

	if err := repository.CreateUser(user); err != nil {
		t.Fatal(err)
	}

	resolved, err := repository.UserByEmail("test@test.com")
	if err != nil {
		t.Fatal(err)
	}

	if resolved != user {
		t.Errorf(
			"unexpected user\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			user.Email,
			resolved.Email,
		)
	}
}

func TestUserRepository_CreateUser_AlreadyExists(t *testing.T) {
	repository := NewUserRepository()

	if err := repository.CreateUser(testUser("test@test.com")); err != nil {
		t.Fatal(err)
	}

	err := repository.CreateUser(testUser("test@test.com"))
	if !errors.Is(err, exchange.ErrUserAlreadyExists) {
		t.Errorf(
			"unexpected error\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			exchange.ErrUserAlreadyExists,
			err,
		)
	}
}

func TestUserRepository_UserByEmail_NotFound(t *testing.T) {
	repository := NewUserRepository()

	_, err := repository.UserByEmail("missing@test.com")
	if !errors.Is(err, exchange.ErrUserNotFound) {
		t.Errorf(
			"unexpected error\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			exchange.ErrUserNotFound,
			err,
		)
	}
}

func testUser(email string) *exchange.User {
	return exchange.NewUser(uuid.New(), "Test", email, "1")
}
