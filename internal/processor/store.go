package processor

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	sc *mongo.Collection
}

func NewMongoStore(symbolCollection *mongo.Collection) *MongoStore {
	return &MongoStore{sc: symbolCollection}
}

// UpsertSymbols bumps tick counts and moves last price/time forward. A
// concurrent first insert of the same symbol surfaces as a duplicate key
// error; the batch is resumed once from the failing write, which then
// matches the inserted document.
func (s *MongoStore) UpsertSymbols(ctx context.Context, data *ProcessedData) error {
	writes := make([]mongo.WriteModel, 0, len(data.SymbolTickCounts))
	for symbol, count := range data.SymbolTickCounts {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"symbol": symbol}).
			SetUpdate(bson.M{
				"$inc": bson.M{"tick_count": count},
				"$max": bson.M{"last_tick_at": data.LatestTimestamps[symbol]},
			}).
			SetUpsert(true))
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{
				"symbol": symbol,
				"$or": bson.A{
					bson.M{"last_price": bson.M{"$exists": false}},
					bson.M{"last_tick_at": data.LatestTimestamps[symbol]},
				},
			}).
			SetUpdate(bson.M{"$set": bson.M{"last_price": data.LastPrices[symbol]}}))
	}

	opts := options.BulkWrite().SetOrdered(true)
	_, err := s.sc.BulkWrite(ctx, writes, opts)
	var bwe mongo.BulkWriteException
	if IsDuplicateKeyError(err) && errors.As(err, &bwe) {
		_, err = s.sc.BulkWrite(ctx, writes[bwe.WriteErrors[0].Index:], opts)
	}
	return err
}
