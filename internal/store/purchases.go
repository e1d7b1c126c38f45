package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/database"
	"github.com/sweetdelights/backend/internal/models"
)

// PurchaseStore reads the purchase ledger. Rows come back denormalized
// (user and sweet fields joined in) and newest first, which is the
// iteration order the analytics grouping documents.
type PurchaseStore struct {
	db *database.DB
}

func NewPurchaseStore(db *database.DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

const selectLedger = `
	SELECT p.id, p.user_id, u.name, u.email,
	       p.sweet_id, s.name, s.category, COALESCE(s.description, ''), COALESCE(s.image_url, ''),
	       p.quantity, p.price_at_purchase, p.purchased_at
	FROM purchases p
	JOIN users u ON u.id = p.user_id
	JOIN sweets s ON s.id = p.sweet_id`

// ListAll returns the full ledger snapshot across all customers.
func (s *PurchaseStore) ListAll() ([]models.PurchaseRecord, error) {
	rows, err := s.db.Query(selectLedger + " ORDER BY p.purchased_at DESC, p.id")
	if err != nil {
		return nil, fmt.Errorf("failed to read purchase ledger: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByUser returns the ledger snapshot scoped to one customer.
func (s *PurchaseStore) ListByUser(userID string) ([]models.PurchaseRecord, error) {
	rows, err := s.db.Query(selectLedger+" WHERE p.user_id = ? ORDER BY p.purchased_at DESC, p.id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read purchase ledger: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]models.PurchaseRecord, error) {
	records := make([]models.PurchaseRecord, 0)
	for rows.Next() {
		var rec models.PurchaseRecord
		var price string
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserName, &rec.UserEmail,
			&rec.SweetID, &rec.SweetName, &rec.SweetCategory, &rec.SweetDescription, &rec.SweetImageURL,
			&rec.Quantity, &price, &rec.PurchasedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase record: %w", err)
		}
		rec.PriceAtPurchase, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse purchase price: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
