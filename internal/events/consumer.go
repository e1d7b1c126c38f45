package events

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/sweetdelights/backend/internal/logging"
)

// StartStockAlertConsumer drains the stock-alert queue and logs a warning
// whenever a purchase leaves a sweet at or below the configured threshold.
// Restock events clear the condition and are logged at info level.
func (b *Broker) StartStockAlertConsumer() error {
	msgs, err := b.channel.Consume(
		b.cfg.StockAlertQueue,
		"sweetshop-stock-alerts", // consumer tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	log := logging.GetLogger()
	threshold := b.cfg.LowStockThreshold

	go func() {
		for msg := range msgs {
			switch msg.RoutingKey {
			case RoutingKeyPurchase:
				var event PurchaseEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					log.WithError(err).Warn("dropping malformed purchase event")
					_ = msg.Nack(false, false)
					continue
				}
				if event.RemainingStock <= threshold {
					log.WithFields(logrus.Fields{
						"sweet_id":        event.SweetID,
						"sweet_name":      event.SweetName,
						"remaining_stock": event.RemainingStock,
						"threshold":       threshold,
					}).Warn("sweet is running low on stock")
				}
			case RoutingKeyRestock:
				var event RestockEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					log.WithError(err).Warn("dropping malformed restock event")
					_ = msg.Nack(false, false)
					continue
				}
				log.WithFields(logrus.Fields{
					"sweet_id":        event.SweetID,
					"sweet_name":      event.SweetName,
					"quantity_added":  event.QuantityAdded,
					"remaining_stock": event.RemainingStock,
				}).Info("sweet restocked")
			}
			_ = msg.Ack(false)
		}
	}()

	return nil
}
