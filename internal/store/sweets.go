package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/database"
	"github.com/sweetdelights/backend/internal/models"
)

type SweetStore struct {
	db *database.DB
}

func NewSweetStore(db *database.DB) *SweetStore {
	return &SweetStore{db: db}
}

// SweetInput carries the writable fields of a catalog entry. Pointer
// fields distinguish "not provided" from zero values on partial updates.
type SweetInput struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Quantity    *int
	Description *string
	ImageURL    *string
}

// SearchParams narrows List results; zero values mean no constraint.
type SearchParams struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// PurchaseResult is what checkout reports back for one line: the updated
// catalog entry plus the ledger row written for it.
type PurchaseResult struct {
	Sweet    models.Sweet
	Purchase models.PurchaseRecord
}

// BulkPurchaseItem is one line of a cart checkout.
type BulkPurchaseItem struct {
	SweetID  string
	Quantity int
}

func (s *SweetStore) Create(in SweetInput, createdBy string) (*models.Sweet, error) {
	if in.Name == nil || in.Category == nil || in.Price == nil {
		return nil, fmt.Errorf("name, category and price are required")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, fmt.Errorf("price must be positive")
	}

	id := uuid.NewString()
	qty := 0
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	desc, imageURL := "", ""
	if in.Description != nil {
		desc = *in.Description
	}
	if in.ImageURL != nil {
		imageURL = *in.ImageURL
	}

	_, err := s.db.Exec(`
		INSERT INTO sweets (id, name, category, price, quantity, description, image_url, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''))
	`, id, *in.Name, *in.Category, in.Price.StringFixed(2), qty, desc, imageURL, createdBy)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert sweet: %w", err)
	}

	return s.GetByID(id)
}

func (s *SweetStore) GetByID(id string) (*models.Sweet, error) {
	row := s.db.QueryRow(selectSweet+" WHERE id = ?", id)
	return scanSweet(row)
}

func (s *SweetStore) List() ([]models.Sweet, error) {
	rows, err := s.db.Query(selectSweet + " ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list sweets: %w", err)
	}
	defer rows.Close()
	return collectSweets(rows)
}

func (s *SweetStore) Search(params SearchParams) ([]models.Sweet, error) {
	query := selectSweet + " WHERE 1=1"
	var args []any

	if params.Name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+params.Name+"%")
	}
	if params.Category != "" {
		query += " AND category LIKE ?"
		args = append(args, "%"+params.Category+"%")
	}
	if params.MinPrice != nil {
		query += " AND price >= ?"
		args = append(args, params.MinPrice.StringFixed(2))
	}
	if params.MaxPrice != nil {
		query += " AND price <= ?"
		args = append(args, params.MaxPrice.StringFixed(2))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}
	defer rows.Close()
	return collectSweets(rows)
}

// Update applies only the fields present in the input.
func (s *SweetStore) Update(id string, in SweetInput) (*models.Sweet, error) {
	sets := ""
	var args []any
	add := func(col string, val any) {
		if sets != "" {
			sets += ", "
		}
		sets += col + " = ?"
		args = append(args, val)
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() || in.Price.IsZero() {
			return nil, fmt.Errorf("price must be positive")
		}
		add("price", in.Price.StringFixed(2))
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("quantity must not be negative")
		}
		add("quantity", *in.Quantity)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.ImageURL != nil {
		add("image_url", *in.ImageURL)
	}
	if sets == "" {
		return s.GetByID(id)
	}

	args = append(args, id)
	res, err := s.db.Exec("UPDATE sweets SET "+sets+" WHERE id = ?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update sweet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetByID(id); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

func (s *SweetStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM sweets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Purchase decrements stock and appends a ledger row priced at the sweet's
// current price, in one transaction. The ledger row is immutable from this
// point on.
func (s *SweetStore) Purchase(userID, sweetID string, quantity int) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("purchase quantity must be positive")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := purchaseInTx(tx, userID, sweetID, quantity)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}
	return result, nil
}

// PurchaseBulk runs a multi-line checkout atomically: either every line is
// in stock and all ledger rows are written, or nothing changes.
func (s *SweetStore) PurchaseBulk(userID string, items []BulkPurchaseItem) ([]PurchaseResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to purchase")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("purchase quantity must be positive")
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	results := make([]PurchaseResult, 0, len(items))
	for _, item := range items {
		result, err := purchaseInTx(tx, userID, item.SweetID, item.Quantity)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bulk purchase: %w", err)
	}
	return results, nil
}

func purchaseInTx(tx *sql.Tx, userID, sweetID string, quantity int) (*PurchaseResult, error) {
	var sweet models.Sweet
	var price string
	err := tx.QueryRow(`
		SELECT id, name, category, price, quantity, COALESCE(description, ''), COALESCE(image_url, '')
		FROM sweets WHERE id = ? FOR UPDATE
	`, sweetID).Scan(&sweet.ID, &sweet.Name, &sweet.Category, &price, &sweet.Quantity, &sweet.Description, &sweet.ImageURL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock sweet row: %w", err)
	}
	sweet.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}

	if sweet.Quantity < quantity {
		return nil, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, sweet.Quantity, quantity)
	}

	now := time.Now().UTC()
	if _, err := tx.Exec("UPDATE sweets SET quantity = quantity - ? WHERE id = ?", quantity, sweetID); err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	purchaseID := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO purchases (id, user_id, sweet_id, quantity, price_at_purchase, purchased_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, purchaseID, userID, sweetID, quantity, sweet.Price.StringFixed(2), now); err != nil {
		return nil, fmt.Errorf("failed to insert purchase: %w", err)
	}

	sweet.Quantity -= quantity
	return &PurchaseResult{
		Sweet: sweet,
		Purchase: models.PurchaseRecord{
			ID:              purchaseID,
			UserID:          userID,
			SweetID:         sweetID,
			SweetName:       sweet.Name,
			SweetCategory:   sweet.Category,
			Quantity:        quantity,
			PriceAtPurchase: sweet.Price,
			PurchasedAt:     now,
		},
	}, nil
}

// Restock increments stock and records who added how much.
func (s *SweetStore) Restock(adminID, sweetID string, quantity int) (*models.Sweet, *models.Restock, error) {
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("restock quantity must be positive")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRow("SELECT quantity FROM sweets WHERE id = ? FOR UPDATE", sweetID).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock sweet row: %w", err)
	}

	if _, err := tx.Exec("UPDATE sweets SET quantity = quantity + ? WHERE id = ?", quantity, sweetID); err != nil {
		return nil, nil, fmt.Errorf("failed to increment stock: %w", err)
	}

	restock := models.Restock{
		ID:            uuid.NewString(),
		AdminID:       adminID,
		SweetID:       sweetID,
		QuantityAdded: quantity,
		RestockedAt:   time.Now().UTC(),
	}
	if _, err := tx.Exec(`
		INSERT INTO restocks (id, admin_id, sweet_id, quantity_added, restocked_at)
		VALUES (?, NULLIF(?, ''), ?, ?, ?)
	`, restock.ID, adminID, sweetID, quantity, restock.RestockedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to insert restock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit restock: %w", err)
	}

	sweet, err := s.GetByID(sweetID)
	if err != nil {
		return nil, nil, err
	}
	return sweet, &restock, nil
}

const selectSweet = `
	SELECT id, name, category, price, quantity, COALESCE(description, ''),
	       COALESCE(image_url, ''), COALESCE(created_by, ''), created_at, updated_at
	FROM sweets`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweet(row rowScanner) (*models.Sweet, error) {
	var sw models.Sweet
	var price string
	err := row.Scan(&sw.ID, &sw.Name, &sw.Category, &price, &sw.Quantity,
		&sw.Description, &sw.ImageURL, &sw.CreatedBy, &sw.CreatedAt, &sw.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan sweet: %w", err)
	}
	sw.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	return &sw, nil
}

func collectSweets(rows *sql.Rows) ([]models.Sweet, error) {
	sweets := make([]models.Sweet, 0)
	for rows.Next() {
		sw, err := scanSweet(rows)
		if err != nil {
			return nil, err
		}
		sweets = append(sweets, *sw)
	}
	return sweets, rows.Err()
}
