package controllers

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/services"
	"groomio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

const oauthStateCookie = "cal_oauth_state"

func settingsURL(params string) string {
	base := os.Getenv("APP_URL")
	if params == "" {
		return base + "/settings"
	}
	return base + "/settings?" + params
}

// InitiateCalComAuth starts the OAuth handshake: random state in a
// short-lived http-only cookie, then redirect to the provider. With
// ?disconnect=1 it drops the stored tokens instead.
func InitiateCalComAuth(c *gin.Context) {
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if c.Query("disconnect") != "" {
		if err := config.DB.Where("user_id = ?", userUUID).
			Delete(&models.CalComToken{}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to disconnect")
			return
		}
		c.Redirect(http.StatusFound, settingsURL(""))
		return
	}

	oauth := services.NewCalComOAuthService()
	state := oauth.GenerateState()
	authURL, err := oauth.GenerateAuthURL(state)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", true, true)
	c.Redirect(http.StatusFound, authURL)
}

// CalComAuthCallback completes the handshake: validate state, exchange the
// code, persist the tokens, register our webhook, then send the user back
// to settings.
func CalComAuthCallback(c *gin.Context) {
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		c.Redirect(http.StatusFound, settingsURL("error="+url.QueryEscape(errParam)))
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.Redirect(http.StatusFound, settingsURL("error=invalid_oauth_callback"))
		return
	}

	storedState, err := c.Cookie(oauthStateCookie)
	if err != nil || storedState != state {
		c.Redirect(http.StatusFound, settingsURL("error=csrf_mismatch"))
		return
	}

	oauth := services.NewCalComOAuthService()
	tokens, err := oauth.ExchangeCodeForTokens(code)
	if err != nil {
		c.Redirect(http.StatusFound, settingsURL("error="+url.QueryEscape(err.Error())))
		return
	}

	userInfo, err := oauth.GetUserInfo(tokens.AccessToken)
	if err != nil {
		c.Redirect(http.StatusFound, settingsURL("error="+url.QueryEscape(err.Error())))
		return
	}

	var expiresAt *time.Time
	if tokens.ExpiresIn > 0 {
		t := time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
		expiresAt = &t
	}
	tokenType := tokens.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	row := models.CalComToken{
		UserID:       userUUID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokenType,
		ExpiresAt:    expiresAt,
		Scope:        tokens.Scope,
		CalUserID:    userInfo.ID.String(),
		CalUsername:  userInfo.Username,
	}
	err = config.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "token_type",
			"expires_at", "scope", "cal_user_id", "cal_username", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		c.Redirect(http.StatusFound, settingsURL("error=token_store_failed"))
		return
	}

	// Keep the salon's provider username current for embed prefills.
	if userInfo.Username != "" {
		config.DB.Model(&models.Salon{}).
			Where("owner_user_id = ?", userUUID).
			Update("cal_com_username", userInfo.Username)
	}

	// Webhook registration is best effort; a connected account without a
	// subscription still works, events just need manual setup.
	if _, err := services.NewWebhookSetupService().SetupWebhookForUser(tokens.AccessToken); err != nil {
		log.Warn().Err(err).Msg("Webhook auto-setup failed during OAuth callback")
	}

	c.SetCookie(oauthStateCookie, "", -1, "/", "", true, true)
	c.Redirect(http.StatusFound, settingsURL("cal_connected=1"))
}
