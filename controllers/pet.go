package controllers

import (
	"errors"
	"net/http"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePetInput struct {
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type"`
	Breed        string  `json:"breed"`
	Age          *int    `json:"age"`
	Allergies    string  `json:"allergies"`
	HealthIssues string  `json:"healthIssues"`
	Preferences  string  `json:"preferences"`
	Notes        string  `json:"notes"`
	ClientID     *string `json:"clientId"` // optional owner to link at creation
}

type UpdatePetInput struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	Breed        *string `json:"breed"`
	Age          *int    `json:"age"`
	Allergies    *string `json:"allergies"`
	HealthIssues *string `json:"healthIssues"`
	Preferences  *string `json:"preferences"`
	Notes        *string `json:"notes"`
}

// CreatePet creates a pet, optionally linked to an owning client.
func CreatePet(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pet := models.Pet{
		SalonID:      salonUUID,
		Name:         input.Name,
		Type:         input.Type,
		Breed:        input.Breed,
		Age:          input.Age,
		Allergies:    input.Allergies,
		HealthIssues: input.HealthIssues,
		Preferences:  input.Preferences,
		Notes:        input.Notes,
	}

	if input.ClientID != nil {
		var client models.Client
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, *input.ClientID).
			First(&client).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			return
		}
		pet.Clients = []models.Client{client}
	}

	if err := config.DB.Create(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

// GetPets retrieves all pets for the salon
func GetPets(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var pets []models.Pet
	if err := config.DB.Preload("Clients").
		Where("salon_id = ?", salonUUID).Order("name").Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}

// GetPet retrieves a specific pet with owners and visit history
func GetPet(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var pet models.Pet
	err := config.DB.Preload("Clients").
		Preload("Visits", func(db *gorm.DB) *gorm.DB {
			return db.Order("visit_date DESC")
		}).
		Where("salon_id = ? AND id = ?", salonUUID, petUUID).
		First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, pet)
}

// UpdatePet updates an existing pet
func UpdatePet(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pet models.Pet
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, petUUID).
		First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Type != nil {
		pet.Type = *input.Type
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.Age != nil {
		pet.Age = input.Age
	}
	if input.Allergies != nil {
		pet.Allergies = *input.Allergies
	}
	if input.HealthIssues != nil {
		pet.HealthIssues = *input.HealthIssues
	}
	if input.Preferences != nil {
		pet.Preferences = *input.Preferences
	}
	if input.Notes != nil {
		pet.Notes = *input.Notes
	}

	if err := config.DB.Save(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	c.JSON(http.StatusOK, pet)
}

// DeletePet deletes a pet and its client links.
func DeletePet(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var pet models.Pet
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, petUUID).
		First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&pet).Association("Clients").Clear(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unlink clients")
		return
	}
	if err := config.DB.Delete(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}
