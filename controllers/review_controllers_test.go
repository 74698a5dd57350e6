package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briankang0314/machsuri-server/models"
)

func TestCreateReviewRatingBounds(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(t, db)

	revieweeID, _ := registerAndLogin(t, r, "expert@example.com", "general")
	_, reviewerToken := registerAndLogin(t, r, "customer@example.com", "general")

	for _, rating := range []int{0, 6, -1} {
		w := doRequest(t, r, http.MethodPost, "/reviews", reviewerToken, map[string]interface{}{
			"reviewee_id": revieweeID,
			"rating":      rating,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
	}

	w := doRequest(t, r, http.MethodPost, "/reviews", reviewerToken, map[string]interface{}{
		"reviewee_id": revieweeID,
		"rating":      5,
		"comment":     "Fast and tidy work",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Reviewee got a notification
	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", revieweeID, models.NotificationTypeReview).Count(&count)
	assert.EqualValues(t, 1, count)

	// Public listing includes the average
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/reviews/user/%d", revieweeID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.EqualValues(t, 5, data["average_rating"])
	assert.EqualValues(t, 1, data["count"])
}

func TestSelfReviewRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(t, db)

	userID, token := registerAndLogin(t, r, "me@example.com", "general")

	w := doRequest(t, r, http.MethodPost, "/reviews", token, map[string]interface{}{
		"reviewee_id": userID,
		"rating":      5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReviewOwnership(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(t, db)

	revieweeID, _ := registerAndLogin(t, r, "expert@example.com", "general")
	_, reviewerToken := registerAndLogin(t, r, "customer@example.com", "general")
	_, strangerToken := registerAndLogin(t, r, "stranger@example.com", "general")

	w := doRequest(t, r, http.MethodPost, "/reviews", reviewerToken, map[string]interface{}{
		"reviewee_id": revieweeID,
		"rating":      4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	reviewID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	path := fmt.Sprintf("/reviews/%d", reviewID)

	w = doRequest(t, r, http.MethodDelete, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodDelete, path, reviewerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Review{}).Where("id = ?", reviewID).Count(&count)
	assert.Zero(t, count)
}
