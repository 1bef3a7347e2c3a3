package repo

import (
	"context"
	"errors"
	"time"

	"stock-trading-backend/internal/api/constant"
	"stock-trading-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RepoItf interface {
	GetSymbols(context.Context) ([]models.SymbolDocument, error)
	GetUser(context.Context, primitive.ObjectID) (*models.UserDocument, error)
	BuyHolding(context.Context, primitive.ObjectID, string, int64, time.Time) error
	SellHolding(context.Context, primitive.ObjectID, string, int64, time.Time) (bool, error)
	SetHoldingQuantity(context.Context, primitive.ObjectID, string, int64) (bool, error)
}

type Repo struct {
	sc *mongo.Collection
	uc *mongo.Collection
}

func NewRepo(symbolCollection, userCollection *mongo.Collection) *Repo {
	return &Repo{sc: symbolCollection, uc: userCollection}
}

func (rp *Repo) GetSymbols(c context.Context) ([]models.SymbolDocument, error) {
	results, err := rp.sc.Find(c, bson.D{}, options.Find().SetSort(
		bson.D{{Key: "symbol", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer results.Close(c)

	var symbols []models.SymbolDocument
	if err = results.All(c, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

func (rp *Repo) GetUser(c context.Context, id primitive.ObjectID) (*models.UserDocument, error) {
	var user models.UserDocument
	err := rp.uc.FindOne(c, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, constant.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// BuyHolding adds quantity to the holding, creating it when absent, and
// appends the trade to the history in the same update.
func (rp *Repo) BuyHolding(c context.Context, id primitive.ObjectID, symbol string, quantity int64, at time.Time) error {
	trade := models.TradeRecord{Action: models.ActionBuy, Symbol: symbol, Quantity: quantity, Timestamp: at}

	// a holding can appear between the two updates, so the increment is
	// attempted again once
	for attempt := 0; attempt < 2; attempt++ {
		res, err := rp.uc.UpdateOne(c,
			bson.M{"_id": id, "portfolio.symbol": symbol},
			bson.M{
				"$inc":  bson.M{"portfolio.$.quantity": quantity},
				"$push": bson.M{"trade_history": trade},
			})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		res, err = rp.uc.UpdateOne(c,
			bson.M{"_id": id, "portfolio.symbol": bson.M{"$ne": symbol}},
			bson.M{"$push": bson.M{
				"portfolio":     models.Holding{Symbol: symbol, Quantity: quantity},
				"trade_history": trade,
			}})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}
	}
	return constant.ErrUserNotFound
}

// SellHolding removes quantity from the holding only if enough shares are
// held at update time; a holding that reaches zero is pulled. It reports
// whether the sale was applied.
func (rp *Repo) SellHolding(c context.Context, id primitive.ObjectID, symbol string, quantity int64, at time.Time) (bool, error) {
	trade := models.TradeRecord{Action: models.ActionSell, Symbol: symbol, Quantity: quantity, Timestamp: at}

	res, err := rp.uc.UpdateOne(c,
		bson.M{"_id": id, "portfolio": bson.M{"$elemMatch": bson.M{
			"symbol": symbol, "quantity": bson.M{"$gt": quantity},
		}}},
		bson.M{
			"$inc":  bson.M{"portfolio.$.quantity": -quantity},
			"$push": bson.M{"trade_history": trade},
		})
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	res, err = rp.uc.UpdateOne(c,
		bson.M{"_id": id, "portfolio": bson.M{"$elemMatch": bson.M{
			"symbol": symbol, "quantity": quantity,
		}}},
		bson.M{
			"$pull": bson.M{"portfolio": bson.M{"symbol": symbol}},
			"$push": bson.M{"trade_history": trade},
		})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// SetHoldingQuantity overwrites the quantity of an existing holding and
// reports whether the holding exists.
func (rp *Repo) SetHoldingQuantity(c context.Context, id primitive.ObjectID, symbol string, quantity int64) (bool, error) {
	res, err := rp.uc.UpdateOne(c,
		bson.M{"_id": id, "portfolio.symbol": symbol},
		bson.M{"$set": bson.M{"portfolio.$.quantity": quantity}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
