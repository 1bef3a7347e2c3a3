package usecase

import (
	"context"
	"errors"
	"strings"

	"stock-trading-backend/internal/api/constant"
	"stock-trading-backend/internal/api/repo"
	"stock-trading-backend/internal/market"
	"stock-trading-backend/internal/models"
	"stock-trading-backend/internal/quote"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const valueConcurrency = 8

type UsecaseItf interface {
	GetSymbols(context.Context) ([]models.SymbolDocument, error)
	GetQuote(context.Context, string) (decimal.Decimal, error)
	GetMovers(context.Context) []models.MoverEntry
	GetPortfolio(context.Context, string) ([]models.Holding, error)
	UpdateHolding(context.Context, string, string, int64) error
	GetPortfolioValue(context.Context, string) (*PortfolioValue, error)
	Trade(context.Context, string, string, string, int64) error
	GetTradeHistory(context.Context, string) ([]models.TradeRecord, error)
}

type HoldingValue struct {
	Holding models.Holding
	Price   decimal.Decimal
	Value   decimal.Decimal
}

type PortfolioValue struct {
	Total  decimal.Decimal
	Stocks []HoldingValue
}

type Usecase struct {
	rp         repo.RepoItf
	prices     quote.PriceSource
	candidates []market.Candidate
	rnd        market.Rand
	clock      clockwork.Clock
}

func NewUsecase(rp repo.RepoItf, prices quote.PriceSource, rnd market.Rand, clock clockwork.Clock) *Usecase {
	return &Usecase{
		rp:         rp,
		prices:     prices,
		candidates: market.DefaultCandidates,
		rnd:        rnd,
		clock:      clock,
	}
}

func (uc *Usecase) GetSymbols(ctx context.Context) ([]models.SymbolDocument, error) {
	// repo
	return uc.rp.GetSymbols(ctx)
}

func (uc *Usecase) GetQuote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return decimal.Zero, constant.ErrNoSymbol
	}
	price, err := uc.prices.GetPrice(ctx, symbol)
	if errors.Is(err, quote.ErrUnavailable) {
		return decimal.Zero, constant.ErrQuoteUnavailable
	}
	return price, err
}

func (uc *Usecase) GetMovers(_ context.Context) []models.MoverEntry {
	return market.GenerateMovers(uc.candidates, uc.rnd)
}

func (uc *Usecase) GetPortfolio(ctx context.Context, userID string) ([]models.Holding, error) {
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Portfolio) == 0 {
		return nil, constant.ErrPortfolioEmpty
	}
	return user.Portfolio, nil
}

func (uc *Usecase) UpdateHolding(ctx context.Context, userID, symbol string, quantity int64) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return constant.ErrNoSymbol
	}

	found, err := uc.rp.SetHoldingQuantity(ctx, id, symbol, quantity)
	if err != nil {
		return err
	}
	if !found {
		return constant.ErrHoldingNotFound
	}
	return nil
}

// GetPortfolioValue prices every holding concurrently. Holdings without an
// available price are left out of both the list and the total.
func (uc *Usecase) GetPortfolioValue(ctx context.Context, userID string) (*PortfolioValue, error) {
	holdings, err := uc.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}

	prices := make([]*decimal.Decimal, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(valueConcurrency)
	for i, h := range holdings {
		i, h := i, h
		g.Go(func() error {
			price, err := uc.prices.GetPrice(gctx, h.Symbol)
			if err != nil {
				return nil
			}
			prices[i] = &price
			return nil
		})
	}
	_ = g.Wait()

	value := &PortfolioValue{Total: decimal.Zero, Stocks: make([]HoldingValue, 0, len(holdings))}
	for i, h := range holdings {
		if prices[i] == nil {
			continue
		}
		v := prices[i].Mul(decimal.NewFromInt(h.Quantity))
		value.Stocks = append(value.Stocks, HoldingValue{Holding: h, Price: *prices[i], Value: v})
		value.Total = value.Total.Add(v)
	}
	return value, nil
}

func (uc *Usecase) Trade(ctx context.Context, userID, action, symbol string, quantity int64) error {
	action = strings.ToLower(strings.TrimSpace(action))
	if action != models.ActionBuy && action != models.ActionSell {
		return constant.ErrInvalidAction
	}
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return constant.ErrNoSymbol
	}
	now := uc.clock.Now().UTC()

	if action == models.ActionBuy {
		return uc.rp.BuyHolding(ctx, id, symbol, quantity, now)
	}

	user, err := uc.rp.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if len(user.Portfolio) == 0 {
		return constant.ErrPortfolioEmpty
	}
	var held *models.Holding
	for i := range user.Portfolio {
		if user.Portfolio[i].Symbol == symbol {
			held = &user.Portfolio[i]
			break
		}
	}
	if held == nil {
		return constant.ErrStockNotInPortfolio
	}
	if held.Quantity < quantity {
		return constant.NewNotEnoughSharesError(held.Quantity, symbol)
	}

	applied, err := uc.rp.SellHolding(ctx, id, symbol, quantity, now)
	if err != nil {
		return err
	}
	if !applied {
		return constant.ErrPortfolioChanged
	}
	return nil
}

func (uc *Usecase) GetTradeHistory(ctx context.Context, userID string) ([]models.TradeRecord, error) {
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TradeHistory == nil {
		return []models.TradeRecord{}, nil
	}
	return user.TradeHistory, nil
}

func (uc *Usecase) getUser(ctx context.Context, userID string) (*models.UserDocument, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return uc.rp.GetUser(ctx, id)
}

func parseUserID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, constant.ErrInvalidUserID
	}
	return id, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
