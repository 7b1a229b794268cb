package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestSalonIDFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if _, ok := salonIDFromContext(c); ok {
			t.Fatal("expected failure when salon id is absent")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("non-string claim", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("salonId", 12345)
		if _, ok := salonIDFromContext(c); ok {
			t.Fatal("expected failure for non-string salon id")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("salonId", "not-a-uuid")
		if _, ok := salonIDFromContext(c); ok {
			t.Fatal("expected failure for malformed salon id")
		}
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})

	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New()
		c.Set("salonId", id.String())
		got, ok := salonIDFromContext(c)
		if !ok || got != id {
			t.Fatalf("got %v ok=%v, want %v", got, ok, id)
		}
	})
}

func TestUserIDFromContextRejectsNonString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", []byte("nope"))
	if _, ok := userIDFromContext(c); ok {
		t.Fatal("expected failure for non-string user id")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
