package cart

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sweetdelights/backend/internal/database"
)

// Store persists one cart snapshot per user. Every mutation goes through
// Save, which is the cart's single save point.
type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Load returns the user's saved cart, or an empty cart if none exists.
func (s *Store) Load(userID string) (Cart, error) {
	var raw []byte
	err := s.db.QueryRow("SELECT items FROM carts WHERE user_id = ?", userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return Cart{Items: []Item{}}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return Cart{Items: items}, nil
}

// Save writes the cart snapshot, replacing any previous one.
func (s *Store) Save(userID string, c Cart) error {
	raw, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO carts (user_id, items) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE items = VALUES(items)
	`, userID, raw)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the user's cart snapshot entirely.
func (s *Store) Delete(userID string) error {
	if _, err := s.db.Exec("DELETE FROM carts WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
