package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Sweet struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Category    string          `json:"category" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Description string          `json:"description" db:"description"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	CreatedBy   string          `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PurchaseRecord is one row of the purchase ledger as the analytics core
// consumes it: the raw purchase joined with its user and sweet at read time.
// PriceAtPurchase is fixed when the row is written and never updated.
type PurchaseRecord struct {
	ID               string          `json:"id" db:"id"`
	UserID           string          `json:"user_id" db:"user_id"`
	UserName         string          `json:"user_name" db:"user_name"`
	UserEmail        string          `json:"user_email" db:"user_email"`
	SweetID          string          `json:"sweet_id" db:"sweet_id"`
	SweetName        string          `json:"sweet_name" db:"sweet_name"`
	SweetCategory    string          `json:"sweet_category" db:"sweet_category"`
	SweetDescription string          `json:"sweet_description" db:"sweet_description"`
	SweetImageURL    string          `json:"sweet_image_url" db:"sweet_image_url"`
	Quantity         int             `json:"quantity" db:"quantity"`
	PriceAtPurchase  decimal.Decimal `json:"price_at_purchase" db:"price_at_purchase"`
	PurchasedAt      time.Time       `json:"purchased_at" db:"purchased_at"`
}

type Restock struct {
	ID            string    `json:"id" db:"id"`
	AdminID       string    `json:"admin_id" db:"admin_id"`
	SweetID       string    `json:"sweet_id" db:"sweet_id"`
	QuantityAdded int       `json:"quantity_added" db:"quantity_added"`
	RestockedAt   time.Time `json:"restocked_at" db:"restocked_at"`
}
