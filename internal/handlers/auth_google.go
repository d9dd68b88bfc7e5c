package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"freelancehub/internal/models"
	"freelancehub/internal/utils"
)

// GoogleOAuthHandler signs users in with a Google account. A first-time sign-in
// creates a client-role account keyed by the Google email; afterwards the flow
// issues the same bearer token the password login does and hands it to the
// frontend via the callback redirect.
type GoogleOAuthHandler struct {
	DB              *gorm.DB
	JWTSecret       string
	Expires         int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
	Log             zerolog.Logger
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)

	// short-lived CSRF state, checked again in the callback
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    st,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})

	return c.Redirect(h.oauthCfg().AuthCodeURL(st), http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing code or state")
	}
	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid state")
	}

	tok, err := h.oauthCfg().Exchange(c.Context(), code)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Failed to exchange code")
	}

	client := h.oauthCfg().Client(c.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Failed to decode userinfo")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	name := strings.TrimSpace(gu.Name)
	if email == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Email not provided by Google")
	}

	var u models.User
	err = h.DB.Where("email = ?", email).First(&u).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.Log.Error().Err(err).Msg("google callback: email lookup")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// password column is not nullable; store an unguessable one that is
		// never used for manual login
		hashed, _ := utils.HashPassword(randomState(24))
		u = models.User{
			Name:       name,
			Email:      email,
			Password:   hashed,
			Role:       models.RoleClient,
			IsVerified: gu.VerifiedEmail,
		}
		if err := h.DB.Create(&u).Error; err != nil {
			h.Log.Error().Err(err).Msg("google callback: create user")
			return errorJSON(c, fiber.StatusInternalServerError, "Server error")
		}
	} else if name != "" && u.Name != name {
		u.Name = name
		_ = h.DB.Save(&u).Error
	}

	jwtToken, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		h.Log.Error().Err(err).Msg("google callback: sign token")
		return errorJSON(c, fiber.StatusInternalServerError, "Server error")
	}

	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1, HTTPOnly: true, SameSite: "Lax"})

	redirectURL := h.FrontendBaseURL + "/auth/callback?token=" + url.QueryEscape(jwtToken)
	return c.Redirect(redirectURL, http.StatusTemporaryRedirect)
}
