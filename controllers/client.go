package controllers

import (
	"errors"
	"net/http"
	"time"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name           string  `json:"name" binding:"required"`
	Surname        string  `json:"surname" binding:"required"`
	PhoneNumber    string  `json:"phoneNumber" binding:"required"`
	Email          *string `json:"email"`
	Address        string  `json:"address"`
	HasGDPRConsent bool    `json:"hasGdprConsent"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name           *string `json:"name"`
	Surname        *string `json:"surname"`
	PhoneNumber    *string `json:"phoneNumber"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	HasGDPRConsent *bool   `json:"hasGdprConsent"`
}

// CreateClient creates a new client for the salon
func CreateClient(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.PhoneNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		SalonID:        salonUUID,
		Name:           input.Name,
		Surname:        input.Surname,
		PhoneNumber:    input.PhoneNumber,
		Address:        input.Address,
		HasGDPRConsent: input.HasGDPRConsent,
	}
	if input.Email != nil {
		if !utils.ValidateEmail(*input.Email) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid email format")
			return
		}
		client.Email = *input.Email
	}
	if input.HasGDPRConsent {
		now := time.Now()
		client.GDPRConsentDate = &now
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients for the salon
func GetClients(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Where("salon_id = ?", salonUUID).Order("surname, name").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client with their pets
func GetClient(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	clientUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.Preload("Pets").
		Where("salon_id = ? AND id = ?", salonUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	clientUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Surname != nil {
		client.Surname = *input.Surname
	}
	if input.PhoneNumber != nil {
		if !utils.ValidatePhone(*input.PhoneNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.HasGDPRConsent != nil && *input.HasGDPRConsent != client.HasGDPRConsent {
		client.HasGDPRConsent = *input.HasGDPRConsent
		if *input.HasGDPRConsent {
			now := time.Now()
			client.GDPRConsentDate = &now
		} else {
			client.GDPRConsentDate = nil
		}
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient deletes a client. Pet links are removed; the pets
// themselves are kept (they may be co-owned or later relinked).
func DeleteClient(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	clientUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&client).Association("Pets").Clear(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unlink pets")
		return
	}
	if err := config.DB.Delete(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// LinkPet attaches a pet to a client. Both must belong to the salon.
func LinkPet(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	clientUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "petId")
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, clientUUID).
		First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	var pet models.Pet
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, petUUID).
		First(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	if err := config.DB.Model(&client).Association("Pets").Append(&pet); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet linked"})
}

// UnlinkPet removes the client-pet association without touching the pet.
func UnlinkPet(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	clientUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "petId")
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, clientUUID).
		First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}
	var pet models.Pet
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, petUUID).
		First(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	if err := config.DB.Model(&client).Association("Pets").Delete(&pet); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unlink pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet unlinked"})
}
