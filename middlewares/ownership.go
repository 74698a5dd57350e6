package middlewares

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Ownership gates load the target resource by its path parameter, compare its
// owner column to the authenticated caller and let admins through. A missing
// resource is a 404, a foreign one a 403. The loaded row is stored in the
// context so handlers do not have to fetch it twice.

func JobOwnerCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, err := strconv.Atoi(c.Param("job_id"))
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid job id"))
			c.Abort()
			return
		}

		var job models.JobPost
		if err := db.First(&job, jobID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("job not found"))
			c.Abort()
			return
		}

		if !callerOwns(c, job.UserID) {
			utils.RespondError(c, http.StatusForbidden, errors.New("not the job owner"))
			c.Abort()
			return
		}

		c.Set("job", job)
		c.Next()
	}
}

func ApplicationOwnerCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		appID, err := strconv.Atoi(c.Param("application_id"))
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid application id"))
			c.Abort()
			return
		}

		var app models.JobApplication
		if err := db.First(&app, appID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("application not found"))
			c.Abort()
			return
		}

		if !callerOwns(c, app.ApplicantID) {
			utils.RespondError(c, http.StatusForbidden, errors.New("not the applicant"))
			c.Abort()
			return
		}

		c.Set("application", app)
		c.Next()
	}
}

func ReviewOwnerCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, err := strconv.Atoi(c.Param("review_id"))
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid review id"))
			c.Abort()
			return
		}

		var review models.Review
		if err := db.First(&review, reviewID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("review not found"))
			c.Abort()
			return
		}

		if !callerOwns(c, review.ReviewerID) {
			utils.RespondError(c, http.StatusForbidden, errors.New("not the reviewer"))
			c.Abort()
			return
		}

		c.Set("review", review)
		c.Next()
	}
}

func callerOwns(c *gin.Context, ownerID uint) bool {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return false
	}
	userID, ok := userIDVal.(uint)
	if !ok {
		return false
	}
	if userID == ownerID {
		return true
	}
	role, _ := c.Get("role")
	return role == models.RoleAdmin
}
