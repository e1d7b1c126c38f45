package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sweetdelights/backend/internal/events"
	"github.com/sweetdelights/backend/internal/middlewares"
	"github.com/sweetdelights/backend/internal/store"
)

type sweetRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2"`
	Category    *string          `json:"category" binding:"omitempty,min=2"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
}

func (r sweetRequest) input() store.SweetInput {
	return store.SweetInput{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (s *Server) createSweet(c *gin.Context) {
	var req sweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed")
		return
	}
	if req.Name == nil || req.Category == nil || req.Price == nil || req.Price.LessThanOrEqual(decimal.Zero) {
		respondError(c, http.StatusBadRequest, "Name, category and a positive price are required")
		return
	}

	sweet, err := s.sweets.Create(req.input(), c.GetString(middlewares.ContextUserID))
	if errors.Is(err, store.ErrDuplicate) {
		respondError(c, http.StatusBadRequest, "A sweet with this name already exists")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to create sweet")
		respondError(c, http.StatusInternalServerError, "Failed to create sweet")
		return
	}

	respondCreated(c, sweet, "Sweet created successfully")
}

func (s *Server) listSweets(c *gin.Context) {
	sweets, err := s.sweets.List()
	if err != nil {
		s.log.WithError(err).Error("failed to list sweets")
		respondError(c, http.StatusInternalServerError, "Failed to fetch sweets")
		return
	}
	respondOK(c, sweets, "Sweets retrieved successfully")
}

func (s *Server) searchSweets(c *gin.Context) {
	params := store.SearchParams{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		params.MinPrice = &p
	}
	if raw := c.Query("maxPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		params.MaxPrice = &p
	}

	results, err := s.sweets.Search(params)
	if err != nil {
		s.log.WithError(err).Error("failed to search sweets")
		respondError(c, http.StatusInternalServerError, "Failed to search sweets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"message": "Search completed successfully",
		"count":   len(results),
	})
}

func (s *Server) updateSweet(c *gin.Context) {
	var req sweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed")
		return
	}
	if req.Price != nil && req.Price.LessThanOrEqual(decimal.Zero) {
		respondError(c, http.StatusBadRequest, "Price must be a positive number")
		return
	}

	sweet, err := s.sweets.Update(c.Param("id"), req.input())
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Sweet not found")
		return
	}
	if errors.Is(err, store.ErrDuplicate) {
		respondError(c, http.StatusBadRequest, "A sweet with this name already exists")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to update sweet")
		respondError(c, http.StatusInternalServerError, "Failed to update sweet")
		return
	}

	respondOK(c, sweet, "Sweet updated successfully")
}

func (s *Server) deleteSweet(c *gin.Context) {
	err := s.sweets.Delete(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Sweet not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to delete sweet")
		respondError(c, http.StatusInternalServerError, "Failed to delete sweet")
		return
	}
	respondOK(c, nil, "Sweet deleted successfully")
}

func (s *Server) purchaseSweet(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Purchase quantity must be a positive number")
		return
	}

	userID := c.GetString(middlewares.ContextUserID)
	result, err := s.sweets.Purchase(userID, c.Param("id"), req.Quantity)
	if err != nil {
		middlewares.RecordCheckoutOperation("purchase", false)
		s.respondPurchaseError(c, err)
		return
	}
	middlewares.RecordCheckoutOperation("purchase", true)
	s.publishPurchases([]store.PurchaseResult{*result})

	respondOK(c, gin.H{"sweet": result.Sweet, "purchase": result.Purchase},
		fmt.Sprintf("Successfully purchased %d %s(s)", req.Quantity, result.Sweet.Name))
}

type bulkPurchaseRequest struct {
	Items []struct {
		SweetID  string `json:"sweet_id" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

func (s *Server) purchaseBulk(c *gin.Context) {
	var req bulkPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Items with positive quantities are required")
		return
	}

	items := make([]store.BulkPurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, store.BulkPurchaseItem{SweetID: item.SweetID, Quantity: item.Quantity})
	}

	userID := c.GetString(middlewares.ContextUserID)
	results, err := s.sweets.PurchaseBulk(userID, items)
	if err != nil {
		middlewares.RecordCheckoutOperation("purchase_bulk", false)
		s.respondPurchaseError(c, err)
		return
	}
	middlewares.RecordCheckoutOperation("purchase_bulk", true)
	s.publishPurchases(results)

	respondOK(c, results, fmt.Sprintf("Successfully purchased %d item(s)", len(results)))
}

func (s *Server) restockSweet(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Restock quantity must be a positive number")
		return
	}

	adminID := c.GetString(middlewares.ContextUserID)
	sweet, restock, err := s.sweets.Restock(adminID, c.Param("id"), req.Quantity)
	if errors.Is(err, store.ErrNotFound) {
		middlewares.RecordCheckoutOperation("restock", false)
		respondError(c, http.StatusNotFound, "Sweet not found")
		return
	}
	if err != nil {
		middlewares.RecordCheckoutOperation("restock", false)
		s.log.WithError(err).Error("failed to restock sweet")
		respondError(c, http.StatusInternalServerError, "Failed to restock sweet")
		return
	}
	middlewares.RecordCheckoutOperation("restock", true)

	if err := s.publisher.PublishRestock(events.RestockEvent{
		RestockID:      restock.ID,
		AdminID:        restock.AdminID,
		SweetID:        sweet.ID,
		SweetName:      sweet.Name,
		QuantityAdded:  restock.QuantityAdded,
		RemainingStock: sweet.Quantity,
		Occurred:       restock.RestockedAt,
	}); err != nil {
		s.log.WithFields(logrus.Fields{"sweet_id": sweet.ID}).WithError(err).Warn("failed to publish restock event")
	}

	respondOK(c, gin.H{"sweet": sweet, "restock": restock},
		fmt.Sprintf("Successfully restocked %d %s(s). New quantity: %d", req.Quantity, sweet.Name, sweet.Quantity))
}

func (s *Server) respondPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Sweet not found")
	case errors.Is(err, store.ErrInsufficientStock):
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Insufficient stock: %v", err))
	default:
		s.log.WithError(err).Error("failed to purchase sweet")
		respondError(c, http.StatusInternalServerError, "Failed to purchase sweet")
	}
}

// publishPurchases emits one event per ledger row written. Publishing is
// best effort: the purchase is already committed, so failures only log.
func (s *Server) publishPurchases(results []store.PurchaseResult) {
	for _, result := range results {
		err := s.publisher.PublishPurchase(events.PurchaseEvent{
			PurchaseID:      result.Purchase.ID,
			UserID:          result.Purchase.UserID,
			SweetID:         result.Sweet.ID,
			SweetName:       result.Sweet.Name,
			Quantity:        result.Purchase.Quantity,
			PriceAtPurchase: result.Purchase.PriceAtPurchase.StringFixed(2),
			RemainingStock:  result.Sweet.Quantity,
			Occurred:        result.Purchase.PurchasedAt,
		})
		if err != nil {
			s.log.WithFields(logrus.Fields{"purchase_id": result.Purchase.ID}).
				WithError(err).Warn("failed to publish purchase event")
		}
	}
}
