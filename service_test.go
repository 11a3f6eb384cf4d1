package exchange_test

import (
	"errors"
	"sync"
	"testing"

	exchange "github.com/Noozen/Currency-Exchange"
	"github.com/Noozen/Currency-Exchange/inmem"
	"github.com/Noozen/Currency-Exchange/uuid"
)

func TestRegistry_RegisterUser(t *testing.T) {
	registry := exchange.NewRegistry(
		inmem.NewUserRepository(),
		&uuid.IDService{},
	)

	user, err := registry.RegisterUser("Test", "test@test.com", "1")
	if err != nil {
		t.Fatal(err)
	}

	if user.Wallet == nil {
		t.Fatalf("registered user must own a wallet")
	}

	if len(user.Wallet.Balances()) != 0 {
		t.Errorf("a fresh wallet must hold no balances")
	}

	resolved, err := registry.UserByEmail("test@test.com")
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

func TestRegistry_RegisterUser_AlreadyExists(t *testing.T) {
	registry := exchange.NewRegistry(
		inmem.NewUserRepository(),
		&uuid.IDService{},
	)

	if _, err := registry.RegisterUser("Test", "test@test.com", "1"); err != nil {
		t.Fatal(err)
	}

	_, err := registry.RegisterUser("Other", "test@test.com", "2")
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

func TestRegistry_UserByEmail_NotFound(t *testing.T) {
	registry := exchange.NewRegistry(
		inmem.NewUserRepository(),
		&uuid.IDService{},
	)

	_, err := registry.UserByEmail("missing@test.com")
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

func TestTransactionService_MakeOrder(t *testing.T) {
	ledger := inmem.NewTransactionRepository()
	events := &eventRecorder{}
	service := newTestTransactionService(ledger, events)

	user := registerTestUser(t)
	user.Wallet.AddFunds(testFunds(t, exchange.PLN, 100.0))
	user.Wallet.AddFunds(testFunds(t, exchange.CAD, 35.1))

	order := exchange.NewOrder(
		testFunds(t, exchange.CAD, 15.0),
		exchange.USD,
		exchange.Sell,
	)

	record, err := service.MakeOrder(order, user)
	if err != nil {
		t.Fatal(err)
	}

	if record.Number != 1 {
		t.Errorf(
			"unexpected sequence number\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			1,
			record.Number,
		)
	}

	expectedBalance := 15.0 * exchange.CAD.SellRate() / exchange.USD.BuyRate()

	if balance := user.Wallet.Balance(exchange.CAD); balance != 35.1-15.0 {
		t.Errorf(
			"unexpected CAD balance\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			35.1-15.0,
			balance,
		)
	}

	if balance := user.Wallet.Balance(exchange.USD); balance != expectedBalance {
		t.Errorf(
			"unexpected USD balance\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			expectedBalance,
			balance,
		)
	}

	resolved, err := service.TransactionByNumber(1)
	if err != nil {
		t.Fatal(err)
	}

	if resolved.Description != order.String() {
		t.Errorf(
			"unexpected transaction description\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			order.String(),
			resolved.Description,
		)
	}

	if _, err := service.TransactionByNumber(2); !errors.Is(
		err,
		exchange.ErrTransactionNotFound,
	) {
		t.Errorf(
			"unexpected error\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			exchange.ErrTransactionNotFound,
			err,
		)
	}

	history := user.OrderHistory()
	if len(history) != 1 || history[0].Number != 1 {
		t.Errorf("order must be noted in the user's history")
	}

	if len(events.recorded()) != 1 {
		t.Errorf("fulfilled order must publish one event")
	}
}

func TestTransactionService_MakeOrder_InsufficientFunds(t *testing.T) {
	ledger := inmem.NewTransactionRepository()
	events := &eventRecorder{}
	service := newTestTransactionService(ledger, events)

	user := registerTestUser(t)
	user.Wallet.AddFunds(testFunds(t, exchange.PLN, 100.0))

	order := exchange.NewOrder(
		testFunds(t, exchange.AUD, 30.0),
		exchange.PLN,
		exchange.Sell,
	)

	_, err := service.MakeOrder(order, user)
	if !errors.Is(err, exchange.ErrInsufficientFunds) {
		t.Errorf(
			"unexpected error\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			exchange.ErrInsufficientFunds,
			err,
		)
	}

	// a rejected order leaves no trace
	count, err := ledger.Count()
	if err != nil {
		t.Fatal(err)
	}

	if count != 0 {
		t.Errorf(
			"unexpected ledger entries count\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			0,
			count,
		)
	}

	if len(user.OrderHistory()) != 0 {
		t.Errorf("rejected order must not enter the user's history")
	}

	if balance := user.Wallet.Balance(exchange.PLN); balance != 100.0 {
		t.Errorf(
			"unexpected PLN balance\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			100.0,
			balance,
		)
	}

	if len(events.recorded()) != 0 {
		t.Errorf("rejected order must not publish events")
	}
}

func TestTransactionService_MakeOrder_ConcurrentNumbering(t *testing.T) {
	ledger := inmem.NewTransactionRepository()
	service := newTestTransactionService(ledger, &eventRecorder{})

	user := registerTestUser(t)
	user.Wallet.AddFunds(testFunds(t, exchange.PLN, 1000.0))

	order := exchange.NewOrder(
		testFunds(t, exchange.PLN, 1.0),
		exchange.USD,
		exchange.Sell,
	)

	ordersCount := 50

	var waitGroup sync.WaitGroup
	for i := 0; i < ordersCount; i++ {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()
			_, _ = service.MakeOrder(order, user)
		}()
	}

	waitGroup.Wait()

	count, err := ledger.Count()
	if err != nil {
		t.Fatal(err)
	}

	if count != uint64(ordersCount) {
		t.Errorf(
			"unexpected ledger entries count\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			ordersCount,
			count,
		)
	}

	// sequence numbers are unique, start at 1 and have no gaps
	issued := make(map[uint64]bool)
	for _, record := range user.OrderHistory() {
		if issued[record.Number] {
			t.Errorf("sequence number [%v] issued twice", record.Number)
		}
		issued[record.Number] = true
	}

	for number := uint64(1); number <= uint64(ordersCount); number++ {
		if !issued[number] {
			t.Errorf("sequence number [%v] was never issued", number)
		}
	}
}

func TestTransactionService_RatesFor(t *testing.T) {
	service := newTestTransactionService(
		inmem.NewTransactionRepository(),
		&eventRecorder{},
	)

	buy, sell := service.RatesFor(exchange.CAD)

	if buy != exchange.CAD.BuyRate() || sell != exchange.CAD.SellRate() {
		t.Errorf(
			"unexpected rates\n"+
				"expected: [%v %v]\n"+
				"actual:   [%v %v]",
			exchange.CAD.BuyRate(),
			exchange.CAD.SellRate(),
			buy,
			sell,
		)
	}
}

func newTestTransactionService(
	ledger exchange.TransactionRepository,
	events exchange.EventService,
) *exchange.TransactionService {
	return exchange.NewTransactionService(
		ledger,
		inmem.NewUserRepository(),
		events,
		&noopLogger{},
	)
}

func registerTestUser(t *testing.T) *exchange.User {
	registry := exchange.NewRegistry(
		inmem.NewUserRepository(),
		&uuid.IDService{},
	)

	user, err := registry.RegisterUser("Test", "test@test.com", "1")
	if err != nil {
		t.Fatal(err)
	}

	return user
}

func testFunds(
	t *testing.T,
	currency exchange.Currency,
	amount float64,
) exchange.Funds {
	funds, err := exchange.NewFunds(currency, amount)
	if err != nil {
		t.Fatal(err)
	}

	return funds
}

type eventRecorder struct {
	mutex  sync.Mutex
	events []*exchange.Event
}

func (er *eventRecorder) Publish(event *exchange.Event) {
	er.mutex.Lock()
	defer er.mutex.Unlock()

	er.events = append(er.events, event)
}

func (er *eventRecorder) recorded() []*exchange.Event {
	er.mutex.Lock()
	defer er.mutex.Unlock()

	snapshot := make([]*exchange.Event, len(er.events))
	copy(snapshot, er.events)

	return snapshot
}

type noopLogger struct{}

func (nl *noopLogger) Debugf(format string, args ...interface{}) {}

func (nl *noopLogger) Infof(format string, args ...interface{}) {}

func (nl *noopLogger) Warningf(format string, args ...interface{}) {}

func (nl *noopLogger) Errorf(format string, args ...interface{}) {}

func (nl *noopLogger) Fatalf(format string, args ...interface{}) {}

func (nl *noopLogger) WithField(
	key string,
	value interface{},
) exchange.Logger {
	return nl
}

func (nl *noopLogger) WithFields(
	fields map[string]interface{},
) exchange.Logger {
	return nl
}
