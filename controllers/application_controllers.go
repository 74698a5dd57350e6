package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplicationController struct {
	DB *gorm.DB
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db}
}

// SubmitApplication creates an application for the authenticated caller.
// The pre-check gives a friendly duplicate message, but the unique index on
// (job_post_id, applicant_id) is what actually rejects a concurrent double
// submit, so the constraint violation maps to the same 400.
func (ac *ApplicationController) SubmitApplication(c *gin.Context) {
	applicantID := currentUserID(c)

	var req struct {
		JobPostID   uint   `json:"job_post_id" binding:"required"`
		CoverLetter string `json:"cover_letter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var job models.JobPost
	if err := ac.DB.First(&job, req.JobPostID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("job not found"))
		return
	}
	if job.IsDeleted || job.Status != models.JobStatusOpen {
		utils.RespondError(c, http.StatusBadRequest, errors.New("job is not open for applications"))
		return
	}
	if job.UserID == applicantID {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot apply to your own job"))
		return
	}

	var existing int64
	ac.DB.Model(&models.JobApplication{}).
		Where("job_post_id = ? AND applicant_id = ?", req.JobPostID, applicantID).
		Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("you have already applied to this job"))
		return
	}

	app := models.JobApplication{
		JobPostID:   req.JobPostID,
		ApplicantID: applicantID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusPending,
	}
	if err := ac.DB.Create(&app).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(err.Error(), "Duplicate entry") {
			utils.RespondError(c, http.StatusBadRequest, errors.New("you have already applied to this job"))
			return
		}
		utils.RespondInternalError(c, err)
		return
	}

	createNotification(ac.DB, job.UserID, models.NotificationTypeApplication,
		fmt.Sprintf("New application received for \"%s\"", job.Title))

	utils.InfoLogger.Printf("Application %d submitted by user %d for job %d", app.ID, applicantID, job.ID)
	utils.RespondJSON(c, http.StatusCreated, "Application submitted", app)
}

// GetMyApplications lists the caller's applications, optionally by status.
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	applicantID := currentUserID(c)

	query := ac.DB.Preload("JobPost").Where("applicant_id = ?", applicantID)
	if status := c.Query("status"); status != "" {
		if !models.ValidApplicationStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var apps []models.JobApplication
	if err := query.Order("applied_at desc").Find(&apps).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My applications", apps)
}

// GetApplicationsForJob lets a job owner (or admin) review the applicants.
func (ac *ApplicationController) GetApplicationsForJob(c *gin.Context) {
	job := jobFromContext(c)
	if job == nil {
		return
	}

	var apps []models.JobApplication
	if err := ac.DB.Preload("Applicant").Where("job_post_id = ?", job.ID).
		Order("applied_at desc").Find(&apps).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Applications for job", apps)
}

// UpdateApplicationStatus moves an application through the pending/accepted/
// rejected whitelist and stamps updated_at. Any other value is a 400.
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	app := applicationFromContext(c)
	if app == nil {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidApplicationStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be one of: pending, accepted, rejected"))
		return
	}

	if err := ac.DB.Model(app).Updates(map[string]interface{}{
		"status":     req.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	if req.Status != models.ApplicationStatusPending {
		createNotification(ac.DB, app.ApplicantID, models.NotificationTypeApplicationStatus,
			fmt.Sprintf("Your application #%d was %s", app.ID, req.Status))
	}

	utils.RespondJSON(c, http.StatusOK, "Application status updated", gin.H{
		"application_id": app.ID,
		"status":         req.Status,
	})
}

// DeleteApplication removes the row permanently.
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	app := applicationFromContext(c)
	if app == nil {
		return
	}

	if err := ac.DB.Delete(&models.JobApplication{}, app.ID).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Application deleted", gin.H{"application_id": app.ID})
}

func applicationFromContext(c *gin.Context) *models.JobApplication {
	val, exists := c.Get("application")
	if !exists {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("application not loaded"))
		return nil
	}
	app, ok := val.(models.JobApplication)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("application not loaded"))
		return nil
	}
	return &app
}
