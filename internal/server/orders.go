package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sweetdelights/backend/internal/analytics"
	"github.com/sweetdelights/backend/internal/middlewares"
	"github.com/sweetdelights/backend/internal/models"
)

// listUserOrders returns one customer's purchase history grouped into
// day-orders. Customers can only read their own history; admins any.
func (s *Server) listUserOrders(c *gin.Context) {
	userID := c.Param("userId")
	if userID != c.GetString(middlewares.ContextUserID) &&
		c.GetString(middlewares.ContextRole) != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	records, err := s.purchases.ListByUser(userID)
	if err != nil {
		s.log.WithError(err).Error("failed to read purchase ledger")
		respondError(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	orders := analytics.GroupIntoOrders(records)
	respondOK(c, gin.H{"orders": orders}, "Orders retrieved successfully")
}

// listUserPurchases returns one customer's raw ledger rows, ungrouped.
// Same visibility rule as listUserOrders.
func (s *Server) listUserPurchases(c *gin.Context) {
	userID := c.Param("userId")
	if userID != c.GetString(middlewares.ContextUserID) &&
		c.GetString(middlewares.ContextRole) != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	records, err := s.purchases.ListByUser(userID)
	if err != nil {
		s.log.WithError(err).Error("failed to read purchase ledger")
		respondError(c, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}

	respondOK(c, gin.H{"purchases": records}, "Purchases retrieved successfully")
}

// listAllOrders returns every customer's orders, for the admin dashboard.
func (s *Server) listAllOrders(c *gin.Context) {
	records, err := s.purchases.ListAll()
	if err != nil {
		s.log.WithError(err).Error("failed to read purchase ledger")
		respondError(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	orders := analytics.GroupIntoOrders(records)
	respondOK(c, gin.H{"orders": orders}, "Orders retrieved successfully")
}
