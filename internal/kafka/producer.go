package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/internal/models"
	"github.com/nguyentranbao-ct/shop-bot/pkg/util"
)

// OrderEventPublisher announces successful checkouts to downstream
// consumers (fulfilment, analytics). Publishing is best effort from the
// bot's point of view.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	Close() error
}

// OrderCreatedEvent is the wire format on the orders topic.
type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	UserID      int64     `json:"user_id"`
	Total       string    `json:"total"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type orderEventPublisher struct {
	writer  *kafka.Writer
	metrics *prometheus.HistogramVec
}

func NewOrderEventPublisher(conf *config.Config) (OrderEventPublisher, error) {
	cfg := conf.Kafka
	if !cfg.Enabled {
		return &noopPublisher{}, nil
	}

	metrics, err := util.GetHistogramVec("kafka_order_events_published", "status", "topic")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &orderEventPublisher{
		writer:  writer,
		metrics: metrics,
	}, nil
}

func (p *orderEventPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	event := OrderCreatedEvent{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Total:       order.Total.StringFixed(2),
		Description: order.Description,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderID),
		Value: value,
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	p.metrics.WithLabelValues(status, p.writer.Topic).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	log.Infof(ctx, "published order created event for %s", order.OrderID)
	return nil
}

func (p *orderEventPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCreated(context.Context, *models.Order) error { return nil }
func (noopPublisher) Close() error                                             { return nil }
