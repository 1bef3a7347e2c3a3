package constant

import (
	"fmt"
	"net/http"
)

type CustomError struct {
	StatusCode int
	Message    string
}

func NewCError(StatusCode int, Message string) CustomError {
	return CustomError{StatusCode: StatusCode, Message: Message}
}

func (err CustomError) Error() string {
	return err.Message
}

var (
	ErrNoSymbol = NewCError(http.StatusBadRequest,
		"please provide symbol")
	ErrInvalidBody = NewCError(http.StatusBadRequest,
		"invalid request body")
	ErrInvalidUserID = NewCError(http.StatusBadRequest,
		"invalid user id")
	ErrUserNotFound = NewCError(http.StatusNotFound,
		"user not found")
	ErrInvalidAction = NewCError(http.StatusBadRequest,
		"invalid action, use 'buy' or 'sell'")
	ErrPortfolioEmpty = NewCError(http.StatusNotFound,
		"portfolio is empty")
	ErrHoldingNotFound = NewCError(http.StatusNotFound,
		"stock not found in portfolio")
	ErrStockNotInPortfolio = NewCError(http.StatusBadRequest,
		"stock not found in portfolio")
	ErrPortfolioChanged = NewCError(http.StatusConflict,
		"portfolio changed during trade, please retry")
	ErrQuoteUnavailable = NewCError(http.StatusBadGateway,
		"stock quote unavailable")
)

func NewNotEnoughSharesError(held int64, symbol string) CustomError {
	return NewCError(http.StatusBadRequest,
		fmt.Sprintf("not enough shares, you have %d of %s", held, symbol))
}
