package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"stock-trading-backend/internal/api/constant"
	"stock-trading-backend/internal/api/dto"
	"stock-trading-backend/internal/api/usecase"
	"stock-trading-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HandlerItf interface {
	Root(*gin.Context)
	GetSymbols(*gin.Context)
	GetQuote(*gin.Context)
	GetMovers(*gin.Context)
	GetPortfolio(*gin.Context)
	UpdatePortfolio(*gin.Context)
	GetPortfolioValue(*gin.Context)
	Trade(*gin.Context)
	GetTradeHistory(*gin.Context)
}

type Handler struct {
	uc usecase.UsecaseItf
}

func NewHandler(uc usecase.UsecaseItf) *Handler {
	return &Handler{uc: uc}
}

// RegisterRoutes mounts the REST API under /api/v1.
func (hd *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", hd.Root)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/symbols", hd.GetSymbols)
		v1.GET("/stocks/:symbol", hd.GetQuote)
		v1.GET("/market/movers", hd.GetMovers)

		users := v1.Group("/users/:userID")
		users.GET("/portfolio", hd.GetPortfolio)
		users.PUT("/portfolio", hd.UpdatePortfolio)
		users.GET("/portfolio/value", hd.GetPortfolioValue)
		users.POST("/trades", hd.Trade)
		users.GET("/trades", hd.GetTradeHistory)
	}
}

func ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, dto.Res{Success: true, Data: data})
}

// bindHolding keeps validation errors as they are so the error middleware
// can list the failing fields.
func bindHolding(ctx *gin.Context) (dto.HoldingReq, bool) {
	var req dto.HoldingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			err = constant.ErrInvalidBody
		}
		ctx.Error(err)
		return req, false
	}
	return req, true
}

func (hd *Handler) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Stock Trading Platform API",
		"status":  "running",
	})
}

func (hd *Handler) GetSymbols(ctx *gin.Context) {
	// usecase
	symbols, err := hd.uc.GetSymbols(ctx.Request.Context())
	if err != nil {
		ctx.Error(err)
		return
	}

	// process response before returning
	var GetSymbolsRes dto.GetSymbolsRes
	GetSymbolsRes.Available = make([]dto.GetSymbolsSingle,
		len(symbols))
	for i, symbol := range symbols {
		GetSymbolsRes.Available[i] =
			dto.GetSymbolsSingle{
				Symbol:     symbol.Symbol,
				TickCount:  symbol.TickCount,
				LastPrice:  decimal128ToFloat(symbol.LastPrice),
				LastTickAt: symbol.LastTickAt,
			}
	}

	// return response
	ok(ctx, GetSymbolsRes)
}

func (hd *Handler) GetQuote(ctx *gin.Context) {
	symbol := ctx.Param("symbol")
	price, err := hd.uc.GetQuote(ctx.Request.Context(), symbol)
	if err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.GetQuoteRes{Symbol: strings.ToUpper(strings.TrimSpace(symbol)), Price: price.InexactFloat64()})
}

func (hd *Handler) GetMovers(ctx *gin.Context) {
	movers := hd.uc.GetMovers(ctx.Request.Context())
	if movers == nil {
		movers = []models.MoverEntry{}
	}
	ok(ctx, dto.GetMoversRes{Movers: movers})
}

func (hd *Handler) GetPortfolio(ctx *gin.Context) {
	holdings, err := hd.uc.GetPortfolio(ctx.Request.Context(), ctx.Param("userID"))
	if err != nil {
		ctx.Error(err)
		return
	}

	res := dto.GetPortfolioRes{Portfolio: make([]dto.HoldingRes, len(holdings))}
	for i, h := range holdings {
		res.Portfolio[i] = dto.HoldingRes{Symbol: h.Symbol, Quantity: h.Quantity, Logo: h.Logo}
	}
	ok(ctx, res)
}

func (hd *Handler) UpdatePortfolio(ctx *gin.Context) {
	req, valid := bindHolding(ctx)
	if !valid {
		return
	}
	if err := hd.uc.UpdateHolding(ctx.Request.Context(), ctx.Param("userID"), req.Symbol, req.Quantity); err != nil {
		ctx.Error(err)
		return
	}
	ok(ctx, dto.MessageRes{Message: "stock quantity updated"})
}

func (hd *Handler) GetPortfolioValue(ctx *gin.Context) {
	value, err := hd.uc.GetPortfolioValue(ctx.Request.Context(), ctx.Param("userID"))
	if err != nil {
		ctx.Error(err)
		return
	}

	res := dto.GetPortfolioValueRes{
		TotalPortfolioValue: value.Total.Round(2).InexactFloat64(),
		Stocks:              make([]dto.HoldingValueRes, len(value.Stocks)),
	}
	for i, s := range value.Stocks {
		res.Stocks[i] = dto.HoldingValueRes{
			Symbol:     s.Holding.Symbol,
			Quantity:   s.Holding.Quantity,
			Price:      s.Price.Round(2).InexactFloat64(),
			TotalValue: s.Value.Round(2).InexactFloat64(),
			Logo:       s.Holding.Logo,
		}
	}
	ok(ctx, res)
}

func (hd *Handler) Trade(ctx *gin.Context) {
	var query dto.TradeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.Error(constant.ErrInvalidAction)
		return
	}
	req, valid := bindHolding(ctx)
	if !valid {
		return
	}

	if err := hd.uc.Trade(ctx.Request.Context(), ctx.Param("userID"), query.Action, req.Symbol, req.Quantity); err != nil {
		ctx.Error(err)
		return
	}

	verb := "Bought"
	if strings.EqualFold(strings.TrimSpace(query.Action), models.ActionSell) {
		verb = "Sold"
	}
	ok(ctx, dto.MessageRes{Message: fmt.Sprintf("%s %d of %s", verb, req.Quantity, req.Symbol)})
}

func (hd *Handler) GetTradeHistory(ctx *gin.Context) {
	history, err := hd.uc.GetTradeHistory(ctx.Request.Context(), ctx.Param("userID"))
	if err != nil {
		ctx.Error(err)
		return
	}

	res := dto.GetTradeHistoryRes{TradeHistory: make([]dto.TradeRecordRes, len(history))}
	for i, tr := range history {
		res.TradeHistory[i] = dto.TradeRecordRes{
			Action:    tr.Action,
			Symbol:    tr.Symbol,
			Quantity:  tr.Quantity,
			Timestamp: tr.Timestamp,
		}
	}
	ok(ctx, res)
}

// an unset Decimal128 renders as 0
func decimal128ToFloat(d primitive.Decimal128) float64 {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
