package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/services"
	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateVisitInput struct {
	VisitDate string `json:"visitDate" binding:"required"` // YYYY-MM-DD
	Notes     string `json:"notes" binding:"required"`
}

type UpdateVisitInput struct {
	VisitDate *string `json:"visitDate"`
	Notes     *string `json:"notes"`
}

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

const maxPhotoSize = 10 << 20 // 10MB

func photoService() *services.PhotoService {
	return services.NewPhotoService(config.Storage, config.PhotoBucket())
}

// CreateVisit adds a grooming visit to a pet's history.
func CreateVisit(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input CreateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	visitDate, err := time.Parse("2006-01-02", input.VisitDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid visit date, expected YYYY-MM-DD")
		return
	}

	var pet models.Pet
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, petUUID).
		First(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	visit := models.PetVisit{
		PetID:     pet.ID,
		SalonID:   salonUUID,
		VisitDate: visitDate.UTC(),
		Notes:     input.Notes,
		Photos:    models.VisitPhotos{},
	}
	if err := config.DB.Create(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create visit")
		return
	}

	c.JSON(http.StatusCreated, visit)
}

// GetVisits lists a pet's visits, newest first.
func GetVisits(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	petUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var visits []models.PetVisit
	if err := config.DB.Where("salon_id = ? AND pet_id = ?", salonUUID, petUUID).
		Order("visit_date DESC").Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	c.JSON(http.StatusOK, visits)
}

// UpdateVisit changes the date or notes of a visit.
func UpdateVisit(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	visitUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var visit models.PetVisit
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, visitUUID).
		First(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.VisitDate != nil {
		visitDate, err := time.Parse("2006-01-02", *input.VisitDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid visit date, expected YYYY-MM-DD")
			return
		}
		visit.VisitDate = visitDate.UTC()
	}
	if input.Notes != nil {
		visit.Notes = *input.Notes
	}

	if err := config.DB.Save(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update visit")
		return
	}

	c.JSON(http.StatusOK, visit)
}

// DeleteVisit removes a visit and its photos from object storage.
func DeleteVisit(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	visitUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var visit models.PetVisit
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, visitUUID).
		First(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete visit")
		return
	}

	// Photos are cleaned up after the row is gone; storage leftovers are
	// logged, not surfaced.
	if len(visit.Photos) > 0 && config.Storage != nil {
		photoService().DeleteAll(c.Request.Context(), visit.Photos)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visit deleted successfully"})
}

// UploadVisitPhoto stores one photo and appends it to the visit's list.
func UploadVisitPhoto(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	visitUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var visit models.PetVisit
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, visitUUID).
		First(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Photo file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedPhotoTypes[contentType] {
		utils.RespondWithError(c, http.StatusBadRequest, "Only JPEG, PNG, and WebP images are allowed")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		utils.RespondWithError(c, http.StatusBadRequest, "File size must be less than 10MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read photo")
		return
	}
	defer file.Close()

	photo, err := photoService().Upload(c.Request.Context(),
		salonUUID, visit.PetID, visit.ID,
		fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to upload photo")
		return
	}

	visit.Photos = append(visit.Photos, photo)
	if err := config.DB.Model(&visit).Update("photos", visit.Photos).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to attach photo to visit")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// DeleteVisitPhoto removes one photo by storage path.
func DeleteVisitPhoto(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	visitUUID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	path := c.Query("path")
	if path == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Photo path is required")
		return
	}

	var visit models.PetVisit
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, visitUUID).
		First(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		return
	}

	remaining := models.VisitPhotos{}
	found := false
	for _, photo := range visit.Photos {
		if photo.Path == path {
			found = true
			continue
		}
		remaining = append(remaining, photo)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Photo not found on visit")
		return
	}

	if err := photoService().Delete(c.Request.Context(), path); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete photo")
		return
	}
	if err := config.DB.Model(&visit).Update("photos", remaining).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update visit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

// GetPhotoURL returns a short-lived signed viewing URL.
func GetPhotoURL(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	path := c.Query("path")
	if path == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Photo path is required")
		return
	}
	// Keys are {salonId}/{petId}/{visitId}/...; the bucket is shared, so
	// the salon prefix is the tenant check.
	if !strings.HasPrefix(path, salonUUID.String()+"/") {
		utils.RespondWithError(c, http.StatusNotFound, "Photo not found")
		return
	}

	url, err := photoService().PresignedURL(c.Request.Context(), path)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get photo URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
