package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briankang0314/machsuri-server/models"
)

func TestNotificationReadFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(t, db)

	userID, token := registerAndLogin(t, r, "recipient@example.com", "general")
	otherID, _ := registerAndLogin(t, r, "other@example.com", "general")

	notifs := []models.Notification{
		{UserID: userID, Type: models.NotificationTypeApplication, Message: "first"},
		{UserID: userID, Type: models.NotificationTypeReview, Message: "second"},
		{UserID: otherID, Type: models.NotificationTypeReview, Message: "not yours"},
	}
	for i := range notifs {
		require.NoError(t, db.Create(&notifs[i]).Error)
	}

	// Only the caller's rows come back
	w := doRequest(t, r, http.MethodGet, "/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Len(t, resp["data"].([]interface{}), 2)

	// Reading someone else's notification is forbidden
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/notifications/%d/read", notifs[2].ID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Mark one read
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/notifications/%d/read", notifs[0].ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var n models.Notification
	require.NoError(t, db.First(&n, notifs[0].ID).Error)
	assert.True(t, n.IsRead)

	// Mark all read
	w = doRequest(t, r, http.MethodPut, "/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&unread)
	assert.Zero(t, unread)

	// The other user's row was untouched; fresh destination so the previous
	// lookup's primary key cannot leak into the query conditions
	var other models.Notification
	require.NoError(t, db.First(&other, notifs[2].ID).Error)
	assert.False(t, other.IsRead)
}

func TestNotificationStreamAuthResolvesUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(t, db)

	userID, token := registerAndLogin(t, r, "stream@example.com", "general")

	// No token at all
	w := doRequest(t, r, http.MethodGet, "/notifications/ws", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A live user's token clears the gate; the plain GET then fails the
	// upgrade handshake, not the auth check
	w = doRequest(t, r, http.MethodGet, "/notifications/ws?token="+token, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Soft-deleting the user invalidates the stream even though the token
	// itself still verifies
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).
		Update("is_deleted", true).Error)

	w = doRequest(t, r, http.MethodGet, "/notifications/ws?token="+token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
