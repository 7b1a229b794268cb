package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// CalComOAuthConfig holds the provider settings, all environment-driven.
type CalComOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
}

// TokenResponse is the provider's token endpoint payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// CalComUserInfo is the minimal profile fetched after the handshake.
type CalComUserInfo struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
}

// CalComOAuthService performs the three-legged OAuth handshake with
// Cal.com. Network failures surface the response body text; the caller
// decides how to report them. No automatic retry.
type CalComOAuthService struct {
	config CalComOAuthConfig
	client *http.Client
}

func NewCalComOAuthService() *CalComOAuthService {
	redirectURI := os.Getenv("CALCOM_REDIRECT_URI")
	if redirectURI == "" {
		redirectURI = os.Getenv("APP_URL") + "/api/auth/calcom/callback"
	}
	scopes := os.Getenv("CALCOM_SCOPES")
	if scopes == "" {
		scopes = "openid profile offline_access"
	}
	authURL := os.Getenv("CALCOM_AUTH_URL")
	if authURL == "" {
		authURL = "https://api.cal.com/oauth/authorize"
	}
	tokenURL := os.Getenv("CALCOM_TOKEN_URL")
	if tokenURL == "" {
		tokenURL = "https://api.cal.com/oauth/token"
	}
	apiBaseURL := os.Getenv("CALCOM_API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "https://api.cal.com/v1"
	}

	return &CalComOAuthService{
		config: CalComOAuthConfig{
			ClientID:     os.Getenv("CALCOM_CLIENT_ID"),
			ClientSecret: os.Getenv("CALCOM_CLIENT_SECRET"),
			RedirectURI:  redirectURI,
			Scopes:       strings.Fields(scopes),
			AuthURL:      authURL,
			TokenURL:     tokenURL,
			APIBaseURL:   apiBaseURL,
		},
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// checkConfig raises the configuration error at first use rather than at
// startup, so deployments without calendar linking still boot.
func (s *CalComOAuthService) checkConfig() error {
	if s.config.ClientID == "" || s.config.ClientSecret == "" {
		return errors.New("CALCOM_CLIENT_ID and CALCOM_CLIENT_SECRET must be set")
	}
	return nil
}

// GenerateState returns a cryptographically random hex state token for
// CSRF protection.
func (s *CalComOAuthService) GenerateState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to generate oauth state")
	}
	return hex.EncodeToString(buf)
}

// GenerateAuthURL builds the provider authorization redirect URL.
func (s *CalComOAuthService) GenerateAuthURL(state string) (string, error) {
	if err := s.checkConfig(); err != nil {
		return "", err
	}
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {s.config.ClientID},
		"redirect_uri":  {s.config.RedirectURI},
		"scope":         {strings.Join(s.config.Scopes, " ")},
		"state":         {state},
	}
	return s.config.AuthURL + "?" + params.Encode(), nil
}

// ExchangeCodeForTokens trades an authorization code for a token pair.
func (s *CalComOAuthService) ExchangeCodeForTokens(code string) (*TokenResponse, error) {
	if err := s.checkConfig(); err != nil {
		return nil, err
	}
	body := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {s.config.RedirectURI},
		"client_id":     {s.config.ClientID},
		"client_secret": {s.config.ClientSecret},
	}
	return s.requestToken(body, "failed to exchange code for tokens")
}

// RefreshAccessToken trades a refresh token for a fresh token pair.
func (s *CalComOAuthService) RefreshAccessToken(refreshToken string) (*TokenResponse, error) {
	if err := s.checkConfig(); err != nil {
		return nil, err
	}
	body := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {s.config.ClientID},
		"client_secret": {s.config.ClientSecret},
	}
	return s.requestToken(body, "failed to refresh access token")
}

func (s *CalComOAuthService) requestToken(body url.Values, failMsg string) (*TokenResponse, error) {
	resp, err := s.client.PostForm(s.config.TokenURL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failMsg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: %s", failMsg, string(text))
	}

	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("%s: %w", failMsg, err)
	}
	return &tokens, nil
}

// GetUserInfo fetches the connected account's profile.
func (s *CalComOAuthService) GetUserInfo(accessToken string) (*CalComUserInfo, error) {
	req, err := http.NewRequest(http.MethodGet, s.config.APIBaseURL+"/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch user info: %s", string(text))
	}

	var info CalComUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	return &info, nil
}
