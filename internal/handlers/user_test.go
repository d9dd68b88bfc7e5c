package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancehub/internal/models"
)

func TestGetProfile(t *testing.T) {
	app, _ := newTestApp(t)

	alice := register(t, app, "Alice", "alice@example.com", "client")

	resp := doRequest(t, app, "GET", "/api/users/profile", alice.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "client", body["userType"])

	_, leaked := body["password"]
	assert.False(t, leaked)
}

func TestUpdateProfile(t *testing.T) {
	app, db := newTestApp(t)

	fred := register(t, app, "Fred", "fred@example.com", "freelancer")

	resp := doRequest(t, app, "PUT", "/api/users/profile", fred.Token, map[string]any{
		"name": "Frederick",
		"profile": map[string]any{
			"bio":        "Ten years of backend work",
			"skills":     []string{"go", "postgres"},
			"hourlyRate": 85,
			"location":   "Berlin",
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Frederick", body["name"])
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "Ten years of backend work", profile["bio"])
	assert.Equal(t, float64(85), profile["hourlyRate"])

	// role stays what it was at registration
	var u models.User
	require.NoError(t, db.First(&u, "email = ?", "fred@example.com").Error)
	assert.Equal(t, models.RoleFreelancer, u.Role)
}

func TestFreelancerDirectory(t *testing.T) {
	app, db := newTestApp(t)

	seedUser(t, db, "Cleo", "cleo@example.com", models.RoleClient)
	top := seedUser(t, db, "Tina", "tina@example.com", models.RoleFreelancer)
	low := seedUser(t, db, "Lou", "lou@example.com", models.RoleFreelancer)
	require.NoError(t, db.Model(&top).Update("rating_average", 4.8).Error)
	require.NoError(t, db.Model(&low).Update("rating_average", 3.1).Error)

	resp := doRequest(t, app, "GET", "/api/users/freelancers", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users []map[string]any
	decodeJSON(t, resp, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "Tina", users[0]["name"])
	assert.Equal(t, "Lou", users[1]["name"])

	for _, u := range users {
		_, leaked := u["password"]
		assert.False(t, leaked)
	}
}
