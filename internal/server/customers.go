package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sweetdelights/backend/internal/analytics"
)

// listCustomers runs the full analytics pipeline over a fresh ledger
// snapshot and returns the filtered customer list together with the
// cohort summary of that same filtered set. Nothing here is cached: a
// filter change simply recomputes.
func (s *Server) listCustomers(c *gin.Context) {
	filters, ok := parseCustomerFilters(c)
	if !ok {
		return
	}

	records, err := s.purchases.ListAll()
	if err != nil {
		s.log.WithError(err).Error("failed to read purchase ledger")
		respondError(c, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	now := s.now()
	customers := analytics.ProcessCustomers(records, filters, now)
	summary := analytics.Summarize(customers, now)

	respondOK(c, gin.H{
		"customers": customers,
		"analytics": summary,
		"count":     len(customers),
	}, "Customers retrieved successfully")
}

func parseCustomerFilters(c *gin.Context) (analytics.Filters, bool) {
	var filters analytics.Filters
	var err error

	filters.Period, err = analytics.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid period: use all, week, month or quarter")
		return filters, false
	}
	filters.SortBy, err = analytics.ParseSortBy(c.Query("sortBy"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid sortBy: use totalSpent, totalOrders or recent")
		return filters, false
	}
	filters.FilterBy, err = analytics.ParseSegment(c.Query("filterBy"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid filterBy: use all, highValue, frequent or recent")
		return filters, false
	}
	filters.SearchQuery = c.Query("search")

	return filters, true
}
