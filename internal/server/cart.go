package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sweetdelights/backend/internal/cart"
	"github.com/sweetdelights/backend/internal/middlewares"
	"github.com/sweetdelights/backend/internal/store"
)

func cartResponse(c cart.Cart) gin.H {
	return gin.H{
		"items":       c.Items,
		"total":       c.Total(),
		"total_items": c.TotalItems(),
	}
}

func (s *Server) getCart(c *gin.Context) {
	current, err := s.carts.Load(c.GetString(middlewares.ContextUserID))
	if err != nil {
		s.log.WithError(err).Error("failed to load cart")
		respondError(c, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	respondOK(c, cartResponse(current), "Cart retrieved successfully")
}

type addToCartRequest struct {
	SweetID  string `json:"sweet_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

func (s *Server) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Sweet id and a positive quantity are required")
		return
	}

	sweet, err := s.sweets.GetByID(req.SweetID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Sweet not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to load sweet")
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if sweet.Quantity <= 0 {
		respondError(c, http.StatusBadRequest, "Sweet is out of stock")
		return
	}

	s.mutateCart(c, func(current cart.Cart) cart.Cart {
		return cart.Add(current, *sweet, req.Quantity)
	})
}

type updateCartRequest struct {
	SweetID  string `json:"sweet_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Sweet id is required")
		return
	}

	s.mutateCart(c, func(current cart.Cart) cart.Cart {
		return cart.UpdateQuantity(current, req.SweetID, req.Quantity)
	})
}

func (s *Server) removeFromCart(c *gin.Context) {
	sweetID := c.Param("sweetId")
	s.mutateCart(c, func(current cart.Cart) cart.Cart {
		return cart.Remove(current, sweetID)
	})
}

func (s *Server) clearCart(c *gin.Context) {
	s.mutateCart(c, cart.Clear)
}

// mutateCart applies a pure cart transition and persists the result: the
// save after each reduction is the cart's single save point.
func (s *Server) mutateCart(c *gin.Context, apply func(cart.Cart) cart.Cart) {
	userID := c.GetString(middlewares.ContextUserID)

	current, err := s.carts.Load(userID)
	if err != nil {
		s.log.WithError(err).Error("failed to load cart")
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	next := apply(current)
	if err := s.carts.Save(userID, next); err != nil {
		s.log.WithError(err).Error("failed to save cart")
		respondError(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	respondOK(c, cartResponse(next), "Cart updated successfully")
}

// checkoutCart purchases every line in the cart atomically and clears the
// cart only when the whole purchase committed.
func (s *Server) checkoutCart(c *gin.Context) {
	userID := c.GetString(middlewares.ContextUserID)

	current, err := s.carts.Load(userID)
	if err != nil {
		s.log.WithError(err).Error("failed to load cart")
		respondError(c, http.StatusInternalServerError, "Failed to checkout")
		return
	}
	// lines clamped to zero since they were added carry nothing to buy
	items := make([]store.BulkPurchaseItem, 0, len(current.Items))
	for _, item := range current.Items {
		if item.Quantity <= 0 {
			continue
		}
		items = append(items, store.BulkPurchaseItem{SweetID: item.SweetID, Quantity: item.Quantity})
	}
	if len(items) == 0 {
		respondError(c, http.StatusBadRequest, "Cart is empty")
		return
	}

	results, err := s.sweets.PurchaseBulk(userID, items)
	if err != nil {
		middlewares.RecordCheckoutOperation("checkout", false)
		s.respondPurchaseError(c, err)
		return
	}
	middlewares.RecordCheckoutOperation("checkout", true)
	s.publishPurchases(results)

	if err := s.carts.Save(userID, cart.Clear(current)); err != nil {
		// the purchase went through; an uncleaned cart is recoverable
		s.log.WithError(err).Warn("failed to clear cart after checkout")
	}

	respondOK(c, results, "Checkout successful")
}
