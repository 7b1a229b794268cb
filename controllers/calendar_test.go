package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestGetCalendarEventsHalfSpecifiedRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/calendar/events", func(c *gin.Context) {
		c.Set("salonId", uuid.NewString())
		GetCalendarEvents(c)
	})

	for _, query := range []string{"?from=2026-03-02", "?to=2026-03-09"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/calendar/events"+query, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, w.Code)
		}
	}
}
