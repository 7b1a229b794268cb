package controllers

import (
	"errors"
	"net/http"
	"time"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/services"
	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func calendarService() *services.CalendarService {
	return services.NewCalendarService(config.DB)
}

// GetCalendarConnection reports whether the user has linked a Cal.com
// account.
func GetCalendarConnection(c *gin.Context) {
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var token models.CalComToken
	err := config.DB.Where("user_id = ?", userUUID).First(&token).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"connected": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true, "expires_at": token.ExpiresAt})
}

// GetCalendarEvents lists the salon's events, optionally bounded by
// from/to query dates (YYYY-MM-DD).
func GetCalendarEvents(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if (fromStr == "") != (toStr == "") {
		utils.RespondWithError(c, http.StatusBadRequest, "Both from and to are required for a date range")
		return
	}

	var events []models.CalendarEvent
	var err error
	if fromStr != "" && toStr != "" {
		from, ferr := time.Parse("2006-01-02", fromStr)
		to, terr := time.Parse("2006-01-02", toStr)
		if ferr != nil || terr != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range, expected YYYY-MM-DD")
			return
		}
		events, err = calendarService().EventsInRange(salonUUID, from, to.AddDate(0, 0, 1))
	} else {
		events, err = calendarService().AllEvents(salonUUID)
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetTodaysEvents lists today's active appointments.
func GetTodaysEvents(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	events, err := calendarService().TodaysEvents(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetThisWeeksEvents lists this week's active appointments (Monday-start).
func GetThisWeeksEvents(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	events, err := calendarService().ThisWeeksEvents(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetPetUpcomingEvents lists a pet's next appointments.
func GetPetUpcomingEvents(c *gin.Context) {
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
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	events, err := calendarService().UpcomingEventsForPet(petUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetPetPastEvents lists a pet's appointment history.
func GetPetPastEvents(c *gin.Context) {
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
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	events, err := calendarService().PastEventsForPet(petUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// SyncCalendar is a manual sync placeholder; events arrive via webhooks.
func SyncCalendar(c *gin.Context) {
	if _, ok := userIDFromContext(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
