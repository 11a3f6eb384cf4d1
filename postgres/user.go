package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgtype"

	exchange "github.com/Noozen/Currency-Exchange"
)

type UserRepository struct {
	client    *Client
	idService exchange.IDService
}

func NewUserRepository(
	client *Client,
	idService exchange.IDService,
) *UserRepository {
	return &UserRepository{client, idService}
}

func (ur *UserRepository) CreateUser(user *exchange.User) error {
	existsQuery := `SELECT EXISTS (
		SELECT 1 FROM wallet_user WHERE email = $1
	)`

	var exists bool
	err := ur.client.instance().Get(&exists, existsQuery, user.Email)
	if err != nil {
		return fmt.Errorf(
			"could not execute query for user [%v]: [%v]",
			user.Email,
			err,
		)
	}

	if exists {
		return exchange.ErrUserAlreadyExists
	}

	query := `INSERT INTO wallet_user (id, name, email, password)
		VALUES (:id, :name, :email, :password)`

	_, err = ur.client.instance().NamedExec(query, new(userRow).wrap(user))
	if err != nil {
		return fmt.Errorf(
			"could not execute command for user [%v]: [%v]",
			user.Email,
			err,
		)
	}

	return ur.UpdateWallet(user)
}

func (ur *UserRepository) UserByEmail(email string) (*exchange.User, error) {
	var row userRow

	query := `SELECT id, name, email, password
		FROM wallet_user WHERE email = $1`

	err := ur.client.instance().Get(&row, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, exchange.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"could not execute query for user [%v]: [%v]",
			email,
			err,
		)
	}

	user, err := row.unwrap(ur.idService)
	if err != nil {
		return nil, fmt.Errorf(
			"could not convert user [%v] from pg row: [%v]",
			email,
			err,
		)
	}

	var balanceRows []balanceRow

	balancesQuery := `SELECT currency, amount
		FROM wallet_balance WHERE user_id = $1
		ORDER BY currency ASC`

	err = ur.client.instance().Select(&balanceRows, balancesQuery, row.ID)
	if err != nil {
		return nil, fmt.Errorf(
			"could not execute balances query for user [%v]: [%v]",
			email,
			err,
		)
	}

	for _, balance := range balanceRows {
		funds, err := balance.unwrap()
		if err != nil {
			return nil, fmt.Errorf(
				"could not convert balance [%v] of user [%v] "+
					"from pg row: [%v]",
				balance.Currency,
				email,
				err,
			)
		}

		user.Wallet.AddFunds(funds)
	}

	return user, nil
}

// UpdateWallet replaces the stored balance snapshot of the user's wallet.
func (ur *UserRepository) UpdateWallet(user *exchange.User) error {
	transaction, err := ur.client.instance().Beginx()
	if err != nil {
		return fmt.Errorf("could not begin transaction: [%v]", err)
	}

	rollback := func() {
		_ = transaction.Rollback()
	}

	_, err = transaction.Exec(
		`DELETE FROM wallet_balance WHERE user_id = $1`,
		user.ID.String(),
	)
	if err != nil {
		rollback()
		return fmt.Errorf(
			"could not clear balances of user [%v]: [%v]",
			user.Email,
			err,
		)
	}

	for _, entry := range user.Wallet.Balances() {
		row, err := new(balanceRow).wrap(user, entry)
		if err != nil {
			rollback()
			return fmt.Errorf(
				"could not convert balance [%v] of user [%v] "+
					"to pg row: [%v]",
				entry.Currency,
				user.Email,
				err,
			)
		}

		_, err = transaction.NamedExec(
			`INSERT INTO wallet_balance (user_id, currency, amount)
				VALUES (:user_id, :currency, :amount)`,
			row,
		)
		if err != nil {
			rollback()
			return fmt.Errorf(
				"could not store balance [%v] of user [%v]: [%v]",
				entry.Currency,
				user.Email,
				err,
			)
		}
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: [%v]", err)
	}

	return nil
}

type userRow struct {
	ID       string
	Name     string
	Email    string
	Password string
}

func (ur *userRow) wrap(user *exchange.User) *userRow {
	ur.ID = user.ID.String()
	ur.Name = user.Name
	ur.Email = user.Email
	ur.Password = user.Password

	return ur
}

func (ur *userRow) unwrap(
	idService exchange.IDService,
) (*exchange.User, error) {
	id, err := idService.NewIDFromString(ur.ID)
	if err != nil {
		return nil, err
	}

	return exchange.NewUser(id, ur.Name, ur.Email, ur.Password), nil
}

type balanceRow struct {
	UserID   string `db:"user_id"`
	Currency string
	Amount   pgtype.Numeric
}

func (br *balanceRow) wrap(
	user *exchange.User,
	entry exchange.BalanceEntry,
) (*balanceRow, error) {
	amount, err := floatToNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	br.UserID = user.ID.String()
	br.Currency = entry.Currency.String()
	br.Amount = amount

	return br, nil
}

func (br *balanceRow) unwrap() (exchange.Funds, error) {
	currency, err := exchange.ParseCurrency(br.Currency)
	if err != nil {
		return exchange.Funds{}, err
	}

	amount, err := numericToFloat(br.Amount)
	if err != nil {
		return exchange.Funds{}, err
	}

	return exchange.NewFunds(currency, amount)
}
