package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentranbao-ct/shop-bot/internal/models"
)

type CartRepository interface {
	// AddOrIncrement bumps the quantity of an existing line by one, or
	// creates the line with quantity one. Upsert keyed on the unique
	// (user_id, product_id) index.
	AddOrIncrement(ctx context.Context, userID, productID int64) error
	SetQuantity(ctx context.Context, userID, productID, quantity int64) error
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.CartLine, error)
}

type cartRepo struct {
	collection *mongo.Collection
}

func NewCartRepository(db *DB) CartRepository {
	return &cartRepo{
		collection: db.Database.Collection(models.CartLine{}.CollectionName()),
	}
}

func (r *cartRepo) AddOrIncrement(ctx context.Context, userID, productID int64) error {
	now := time.Now()
	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{
		"$inc":         bson.M{"quantity": int64(1)},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "product_id": productID, "created_at": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return nil
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, productID, quantity int64) error {
	if quantity < 1 {
		return models.ErrInvalidQuantity
	}

	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{"$set": bson.M{"quantity": quantity, "updated_at": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set cart line quantity: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *cartRepo) Remove(ctx context.Context, userID, productID int64) error {
	filter := bson.M{"user_id": userID, "product_id": productID}

	// Removing an absent line is a no-op, not an error.
	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]models.CartLine, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []models.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart lines: %w", err)
	}

	return lines, nil
}
