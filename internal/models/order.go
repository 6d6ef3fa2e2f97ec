package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     string             `bson:"order_id" json:"order_id"`
	UserID      int64              `bson:"user_id" json:"user_id"`
	Total       Money              `bson:"total" json:"total"`
	Description string             `bson:"description" json:"description"`
	Status      OrderStatus        `bson:"status" json:"status"`
	Items       []OrderItem        `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

func (Order) CollectionName() string {
	return "orders"
}

// OrderItem snapshots a cart line at checkout time, unit price included.
type OrderItem struct {
	ProductID int64  `bson:"product_id" json:"product_id"`
	Name      string `bson:"name" json:"name"`
	UnitPrice Money  `bson:"unit_price" json:"unit_price"`
	Quantity  int64  `bson:"quantity" json:"quantity"`
}

// OrderDescriptor is the ephemeral result of assembling a checkout. It is
// what gets handed to the payment provider; the persisted Order is built
// from it.
type OrderDescriptor struct {
	UserID      int64
	OrderID     string
	Total       decimal.Decimal
	Description string
}
