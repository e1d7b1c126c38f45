package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sweetdelights/backend/internal/auth"
	"github.com/sweetdelights/backend/internal/middlewares"
	"github.com/sweetdelights/backend/internal/models"
	"github.com/sweetdelights/backend/internal/store"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.WithError(err).Error("failed to hash password")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := s.users.Create(req.Name, req.Email, hash, models.RoleUser)
	if errors.Is(err, store.ErrDuplicate) {
		respondError(c, http.StatusConflict, "User already exists with this email")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to create user")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondCreated(c, gin.H{"user": user}, "Registration successful")
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.users.GetByEmail(req.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to look up user")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		s.log.WithFields(logrus.Fields{"user_id": user.ID}).WithError(err).Error("failed to issue token")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, gin.H{"token": token, "user": user}, "Login successful")
}

// getProfile returns the account behind the presented token.
func (s *Server) getProfile(c *gin.Context) {
	user, err := s.users.GetByID(c.GetString(middlewares.ContextUserID))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("failed to load profile")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, gin.H{"user": user}, "Profile retrieved successfully")
}
