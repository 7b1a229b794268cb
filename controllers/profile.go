package controllers

import (
	"net/http"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSalonInput struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	NIP            *string `json:"nip"`
	CalComUsername *string `json:"calComUsername"`
}

func GetSalonProfile(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             salon.ID,
		"name":           salon.Name,
		"address":        salon.Address,
		"nip":            salon.NIP,
		"calComUsername": salon.CalComUsername,
	})
}

func UpdateSalonProfile(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.NIP != nil {
		salon.NIP = *input.NIP
	}
	if input.CalComUsername != nil {
		salon.CalComUsername = *input.CalComUsername
	}

	if err := config.DB.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Salon updated"})
}
