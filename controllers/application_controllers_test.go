package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briankang0314/machsuri-server/models"
)

func TestDuplicateApplicationRejected(t *testing.T) {
	db := setupTestDB(t)
	cityID, minorID := seedTaxonomy(t, db)
	r := setupRouterForTest(t, db)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com", "general")
	_, applicantToken := registerAndLogin(t, r, "applicant@example.com", "general")

	jobID := createJob(t, r, ownerToken, cityID, minorID)
	secondJobID := createJob(t, r, ownerToken, cityID, minorID)

	w := doRequest(t, r, http.MethodPost, "/applications", applicantToken, map[string]interface{}{
		"job_post_id":  jobID,
		"cover_letter": "I can fix this today",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Second submission to the same job fails
	w = doRequest(t, r, http.MethodPost, "/applications", applicantToken, map[string]interface{}{
		"job_post_id": jobID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A different job still works
	w = doRequest(t, r, http.MethodPost, "/applications", applicantToken, map[string]interface{}{
		"job_post_id": secondJobID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The unique index backs the check even if the pre-read raced
	var count int64
	db.Model(&models.JobApplication{}).Where("job_post_id = ?", jobID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestApplyToOwnJobRejected(t *testing.T) {
	db := setupTestDB(t)
	cityID, minorID := seedTaxonomy(t, db)
	r := setupRouterForTest(t, db)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com", "general")
	jobID := createJob(t, r, ownerToken, cityID, minorID)

	w := doRequest(t, r, http.MethodPost, "/applications", ownerToken, map[string]interface{}{
		"job_post_id": jobID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationStatusWhitelist(t *testing.T) {
	db := setupTestDB(t)
	cityID, minorID := seedTaxonomy(t, db)
	r := setupRouterForTest(t, db)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com", "general")
	_, applicantToken := registerAndLogin(t, r, "applicant@example.com", "general")
	jobID := createJob(t, r, ownerToken, cityID, minorID)

	w := doRequest(t, r, http.MethodPost, "/applications", applicantToken, map[string]interface{}{
		"job_post_id": jobID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	appID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	path := fmt.Sprintf("/applications/%d", appID)

	// Outside the whitelist
	w = doRequest(t, r, http.MethodPut, path, applicantToken, map[string]string{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Each whitelisted value persists
	for _, status := range []string{"accepted", "rejected", "pending"} {
		w = doRequest(t, r, http.MethodPut, path, applicantToken, map[string]string{"status": status})
		require.Equal(t, http.StatusOK, w.Code, status)

		var app models.JobApplication
		require.NoError(t, db.First(&app, appID).Error)
		assert.Equal(t, status, app.Status)
	}
}

func TestApplicationOwnershipAndListing(t *testing.T) {
	db := setupTestDB(t)
	cityID, minorID := seedTaxonomy(t, db)
	r := setupRouterForTest(t, db)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com", "general")
	_, applicantToken := registerAndLogin(t, r, "applicant@example.com", "general")
	_, strangerToken := registerAndLogin(t, r, "stranger@example.com", "general")
	jobID := createJob(t, r, ownerToken, cityID, minorID)

	w := doRequest(t, r, http.MethodPost, "/applications", applicantToken, map[string]interface{}{
		"job_post_id": jobID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	appID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	path := fmt.Sprintf("/applications/%d", appID)

	// A stranger cannot update or delete someone else's application
	w = doRequest(t, r, http.MethodPut, path, strangerToken, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(t, r, http.MethodDelete, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The applicant sees their own list, filterable by status
	w = doRequest(t, r, http.MethodGet, "/applications", applicantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Len(t, resp["data"].([]interface{}), 1)

	w = doRequest(t, r, http.MethodGet, "/applications?status=accepted", applicantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Empty(t, resp["data"])

	// The job owner can list applications for their job; a stranger cannot
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/applications/job/%d", jobID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/applications/job/%d", jobID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Submitting notifies the job owner
	var notifCount int64
	db.Model(&models.Notification{}).Where("type = ?", models.NotificationTypeApplication).Count(&notifCount)
	assert.EqualValues(t, 1, notifCount)

	// The applicant can delete their own application
	w = doRequest(t, r, http.MethodDelete, path, applicantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplicationToClosedJobRejected(t *testing.T) {
	db := setupTestDB(t)
	cityID, minorID := seedTaxonomy(t, db)
	r := setupRouterForTest(t, db)

	_, ownerToken := registerAndLogin(t, r, "owner@example.com", "general")
	_, applicantToken := registerAndLogin(t, r, "applicant@example.com", "general")
	jobID := createJob(t, r, ownerToken, cityID, minorID)

	w := doRequest(t, r, http.MethodPut, jobPath(jobID, "/status"), ownerToken, map[string]string{"status": "closed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/applications", applicantToken, map[string]interface{}{
		"job_post_id": jobID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
