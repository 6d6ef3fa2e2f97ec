package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentranbao-ct/shop-bot/internal/models"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
}

type categoryRepo struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *DB) CategoryRepository {
	return &categoryRepo{
		collection: db.Database.Collection(models.Category{}.CollectionName()),
	}
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}
