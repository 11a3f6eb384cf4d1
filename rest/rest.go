// Package rest is the HTTP collaborator of the wallet core. It binds
// request parameters, calls the function-level contracts of the domain
// package and translates domain errors to status codes. No business logic
// lives here.
package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	exchange "github.com/Noozen/Currency-Exchange"
)

type Server struct {
	app                *fiber.App
	registry           *exchange.Registry
	transactionService *exchange.TransactionService
	logger             exchange.Logger
}

func NewServer(
	registry *exchange.Registry,
	transactionService *exchange.TransactionService,
	logger exchange.Logger,
) *Server {
	server := &Server{
		app:                fiber.New(),
		registry:           registry,
		transactionService: transactionService,
		logger:             logger,
	}

	server.app.Get("/rates", server.listRates)
	server.app.Get("/rates/:currency", server.currencyRates)
	server.app.Post("/users", server.registerUser)
	server.app.Get("/users/:email/wallet", server.showWallet)
	server.app.Get("/users/:email/history", server.showHistory)
	server.app.Post("/users/:email/funds", server.addFunds)
	server.app.Post("/users/:email/orders", server.makeOrder)
	server.app.Post("/users/:email/transfers", server.sendMoney)
	server.app.Get("/transactions/:number", server.transactionByNumber)

	return server
}

func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type rateView struct {
	Currency string  `json:"currency"`
	Buy      float64 `json:"buy"`
	Sell     float64 `json:"sell"`
}

func (s *Server) listRates(ctx *fiber.Ctx) error {
	rates := exchange.ConvertibleRates()

	views := make([]rateView, 0, len(rates))
	for _, rate := range rates {
		views = append(views, rateView{
			Currency: rate.Currency.String(),
			Buy:      rate.Buy,
			Sell:     rate.Sell,
		})
	}

	return ctx.JSON(views)
}

func (s *Server) currencyRates(ctx *fiber.Ctx) error {
	currency, err := exchange.ParseCurrency(ctx.Params("currency"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	buy, sell := s.transactionService.RatesFor(currency)

	return ctx.JSON(rateView{
		Currency: currency.String(),
		Buy:      buy,
		Sell:     sell,
	})
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) registerUser(ctx *fiber.Ctx) error {
	var request registerUserRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := s.registry.RegisterUser(
		request.Name,
		request.Email,
		request.Password,
	)
	if err != nil {
		return domainError(err)
	}

	s.logger.Infof("registered user [%v]", user.Email)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID.String(),
		"email": user.Email,
	})
}

type balanceView struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

func (s *Server) showWallet(ctx *fiber.Ctx) error {
	user, err := s.registry.UserByEmail(ctx.Params("email"))
	if err != nil {
		return domainError(err)
	}

	balances := user.Wallet.Balances()

	views := make([]balanceView, 0, len(balances))
	for _, balance := range balances {
		views = append(views, balanceView{
			Currency: balance.Currency.String(),
			Amount:   balance.Amount,
		})
	}

	return ctx.JSON(views)
}

type transactionView struct {
	Number      uint64 `json:"number"`
	Description string `json:"description"`
}

func (s *Server) showHistory(ctx *fiber.Ctx) error {
	user, err := s.registry.UserByEmail(ctx.Params("email"))
	if err != nil {
		return domainError(err)
	}

	history := user.OrderHistory()

	views := make([]transactionView, 0, len(history))
	for _, record := range history {
		views = append(views, transactionView{
			Number:      record.Number,
			Description: record.Description,
		})
	}

	return ctx.JSON(views)
}

type fundsRequest struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

func (fr *fundsRequest) funds() (exchange.Funds, error) {
	currency, err := exchange.ParseCurrency(fr.Currency)
	if err != nil {
		return exchange.Funds{}, err
	}

	return exchange.NewFunds(currency, fr.Amount)
}

func (s *Server) addFunds(ctx *fiber.Ctx) error {
	var request fundsRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	funds, err := request.funds()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := s.registry.UserByEmail(ctx.Params("email"))
	if err != nil {
		return domainError(err)
	}

	user.Wallet.AddFunds(funds)

	if err := s.registry.SaveWallet(user); err != nil {
		return domainError(err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

type orderRequest struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	Target   string  `json:"target"`
	Side     string  `json:"side"`
}

func (s *Server) makeOrder(ctx *fiber.Ctx) error {
	var request orderRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	currency, err := exchange.ParseCurrency(request.Currency)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	source, err := exchange.NewFunds(currency, request.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	target, err := exchange.ParseCurrency(request.Target)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	side, err := exchange.ParseOrderSide(request.Side)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := s.registry.UserByEmail(ctx.Params("email"))
	if err != nil {
		return domainError(err)
	}

	record, err := s.transactionService.MakeOrder(
		exchange.NewOrder(source, target, side),
		user,
	)
	if err != nil {
		return domainError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(transactionView{
		Number:      record.Number,
		Description: record.Description,
	})
}

type transferRequest struct {
	Recipient string  `json:"recipient"`
	Currency  string  `json:"currency"`
	Amount    float64 `json:"amount"`
}

func (s *Server) sendMoney(ctx *fiber.Ctx) error {
	var request transferRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	currency, err := exchange.ParseCurrency(request.Currency)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	funds, err := exchange.NewFunds(currency, request.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sender, err := s.registry.UserByEmail(ctx.Params("email"))
	if err != nil {
		return domainError(err)
	}

	recipient, err := s.registry.UserByEmail(request.Recipient)
	if err != nil {
		return domainError(err)
	}

	if err := sender.Wallet.SendMoney(recipient.Wallet, funds); err != nil {
		return domainError(err)
	}

	if err := s.registry.SaveWallet(sender); err != nil {
		return domainError(err)
	}

	if err := s.registry.SaveWallet(recipient); err != nil {
		return domainError(err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) transactionByNumber(ctx *fiber.Ctx) error {
	number, err := ctx.ParamsInt("number")
	if err != nil || number < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid number")
	}

	record, err := s.transactionService.TransactionByNumber(uint64(number))
	if err != nil {
		return domainError(err)
	}

	return ctx.JSON(transactionView{
		Number:      record.Number,
		Description: record.Description,
	})
}

func domainError(err error) error {
	switch {
	case errors.Is(err, exchange.ErrInsufficientFunds):
		return fiber.NewError(fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, exchange.ErrTransactionNotFound),
		errors.Is(err, exchange.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, exchange.ErrUserAlreadyExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
