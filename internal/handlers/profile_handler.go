package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskway/internal/services"
)

type ProfileHandler struct {
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := getUserID(c)

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[profile][get][err] user=%s: %v", userID, err)
		respondRepoErr(c, err, "failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := getUserID(c)

	var req struct {
		FullName  *string `json:"full_name"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FullName != nil && len(*req.FullName) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name must be at least 2 characters"})
		return
	}

	profile, err := h.service.Update(c.Request.Context(), userID, req.FullName, req.AvatarURL)
	if err != nil {
		log.Printf("[profile][update][err] user=%s: %v", userID, err)
		respondRepoErr(c, err, "failed to update profile")
		return
	}
	log.Printf("[profile][update][ok] user=%s", userID)
	c.JSON(http.StatusOK, profile)
}
