package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one (user, product) entry in a cart. A user holds at most one
// line per product; quantity is always >= 1, a zero quantity means the line
// is deleted instead of stored.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int64              `bson:"user_id" json:"user_id"`
	ProductID int64              `bson:"product_id" json:"product_id"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

func (CartLine) CollectionName() string {
	return "cart_lines"
}

// CartItem is a cart line joined with the live product snapshot at read time.
// Unit price comes from the catalog on every view, never from the line.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}
