package controllers

import (
	"net/http"

	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// salonIDFromContext reads the tenant id the auth middleware injected.
// Writes the error response itself when missing or malformed.
func salonIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonStr, ok := salonID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid salon ID format")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(salonStr)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userStr, ok := userID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userStr)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// uuidParam parses a :id style path parameter.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
