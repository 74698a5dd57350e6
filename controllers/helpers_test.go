package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/router"
	"github.com/briankang0314/machsuri-server/utils"
)

// setupTestDB opens an in-memory SQLite database and migrates every model.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Region{},
		&models.City{},
		&models.MajorCategory{},
		&models.MinorCategory{},
		&models.User{},
		&models.UserPreference{},
		&models.JobPost{},
		&models.JobCategory{},
		&models.JobApplication{},
		&models.Review{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

// seedTaxonomy inserts one region/city and one major/minor category pair.
func seedTaxonomy(t *testing.T, db *gorm.DB) (cityID, minorID uint) {
	t.Helper()

	region := models.Region{Name: "Seoul"}
	require.NoError(t, db.Create(&region).Error)
	city := models.City{RegionID: region.ID, Name: "Gangnam"}
	require.NoError(t, db.Create(&city).Error)

	major := models.MajorCategory{Name: "Repair"}
	require.NoError(t, db.Create(&major).Error)
	minor := models.MinorCategory{MajorCategoryID: major.ID, Name: "Plumbing"}
	require.NoError(t, db.Create(&minor).Error)

	return city.ID, minor.ID
}

func setupRouterForTest(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if utils.InfoLogger == nil {
		utils.InitLogger()
	}
	return router.SetupRouter(db)
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// registerAndLogin creates a user straight through the API and returns
// its id together with a valid token.
func registerAndLogin(t *testing.T, r *gin.Engine, email, role string) (uint, string) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/users/register", "", map[string]interface{}{
		"name":     "User " + email,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	userID := uint(data["user_id"].(float64))

	w = doRequest(t, r, http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp = parseResponse(t, w)
	data = resp["data"].(map[string]interface{})
	token := data["token"].(string)

	return userID, token
}

// createJob posts a job through the API and returns its id.
func createJob(t *testing.T, r *gin.Engine, token string, cityID, minorID uint) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/jobs", token, map[string]interface{}{
		"city_id":            cityID,
		"title":              "Fix kitchen sink",
		"summary":            "Leaking pipe under the sink",
		"fee":                10.0,
		"contact_info":       "010-0000-0000",
		"minor_category_ids": []uint{minorID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	data := resp["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func jobPath(jobID uint, suffix string) string {
	return fmt.Sprintf("/jobs/%d%s", jobID, suffix)
}
