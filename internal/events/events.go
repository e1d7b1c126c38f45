package events

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sweetdelights/backend/internal/config"
)

const (
	RoutingKeyPurchase = "sweet.purchased"
	RoutingKeyRestock  = "sweet.restocked"
)

// PurchaseEvent announces one ledger row written by checkout.
type PurchaseEvent struct {
	PurchaseID      string    `json:"purchase_id"`
	UserID          string    `json:"user_id"`
	SweetID         string    `json:"sweet_id"`
	SweetName       string    `json:"sweet_name"`
	Quantity        int       `json:"quantity"`
	PriceAtPurchase string    `json:"price_at_purchase"`
	RemainingStock  int       `json:"remaining_stock"`
	Occurred        time.Time `json:"occurred"`
}

// RestockEvent announces a stock increase.
type RestockEvent struct {
	RestockID      string    `json:"restock_id"`
	AdminID        string    `json:"admin_id"`
	SweetID        string    `json:"sweet_id"`
	SweetName      string    `json:"sweet_name"`
	QuantityAdded  int       `json:"quantity_added"`
	RemainingStock int       `json:"remaining_stock"`
	Occurred       time.Time `json:"occurred"`
}

// Publisher is what the HTTP layer needs from the broker. A nil *Broker is
// a valid no-op Publisher, so messaging stays optional.
type Publisher interface {
	PublishPurchase(event PurchaseEvent) error
	PublishRestock(event RestockEvent) error
}

type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.EventsConfig
}

func NewBroker(cfg *config.EventsConfig) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Broker{conn: conn, channel: ch, cfg: cfg}, nil
}

// SetupTopology declares the event exchange and the stock-alert queue
// bound to both routing keys.
func (b *Broker) SetupTopology() error {
	if err := b.channel.ExchangeDeclare(
		b.cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := b.channel.QueueDeclare(
		b.cfg.StockAlertQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	for _, key := range []string{RoutingKeyPurchase, RoutingKeyRestock} {
		if err := b.channel.QueueBind(b.cfg.StockAlertQueue, key, b.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}
	return nil
}

func (b *Broker) PublishPurchase(event PurchaseEvent) error {
	if b == nil {
		return nil
	}
	return b.publish(RoutingKeyPurchase, event)
}

func (b *Broker) PublishRestock(event RestockEvent) error {
	if b == nil {
		return nil
	}
	return b.publish(RoutingKeyRestock, event)
}

func (b *Broker) publish(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return b.channel.Publish(
		b.cfg.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (b *Broker) Close() {
	if b == nil {
		return
	}
	if b.channel != nil {
		_ = b.channel.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}
