package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JobController struct {
	DB *gorm.DB
}

func NewJobController(db *gorm.DB) *JobController {
	return &JobController{DB: db}
}

// CreateJob inserts the job row and its category links in one transaction.
// Every field is required; an empty category list is a 400.
func (jc *JobController) CreateJob(c *gin.Context) {
	type request struct {
		CityID           uint     `json:"city_id" binding:"required"`
		Title            string   `json:"title" binding:"required"`
		Summary          string   `json:"summary" binding:"required"`
		Fee              *float64 `json:"fee" binding:"required"`
		ContactInfo      string   `json:"contact_info" binding:"required"`
		MinorCategoryIDs []uint   `json:"minor_category_ids" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.MinorCategoryIDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("at least one minor category is required"))
		return
	}
	if *req.Fee < 0 || *req.Fee > 100 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("fee must be a percentage between 0 and 100"))
		return
	}

	job := models.JobPost{
		UserID:      currentUserID(c),
		CityID:      req.CityID,
		Title:       req.Title,
		Summary:     req.Summary,
		Fee:         *req.Fee,
		ContactInfo: req.ContactInfo,
		Status:      models.JobStatusOpen,
	}

	err := jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		for _, minorID := range req.MinorCategoryIDs {
			var minor models.MinorCategory
			if err := tx.First(&minor, minorID).Error; err != nil {
				return fmt.Errorf("minor category %d not found", minorID)
			}
			link := models.JobCategory{JobPostID: job.ID, MinorCategoryID: minorID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.InfoLogger.Printf("Job post %d created by user %d", job.ID, job.UserID)

	// The row is committed at this point; if the preloaded read fails we
	// still answer 201 with the in-memory job rather than pretend the
	// create failed.
	var created models.JobPost
	if err := jc.DB.Preload("Categories.MinorCategory").First(&created, job.ID).Error; err != nil {
		utils.ErrorLogger.Printf("Reloading job %d after create: %v", job.ID, err)
		utils.RespondJSON(c, http.StatusCreated, "Job created", job)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Job created", created)
}

// GetAllJobs lists jobs through an allow-listed filter. Query parameters
// outside the list are ignored rather than forwarded to the query layer.
// Zero matches respond 404, not an empty 200 array.
func (jc *JobController) GetAllJobs(c *gin.Context) {
	query := jc.DB.Model(&models.JobPost{}).Preload("City").Preload("Categories.MinorCategory")

	if c.Query("include_deleted") != "true" {
		query = query.Where("is_deleted = ?", false)
	}
	if v := c.Query("city_id"); v != "" {
		cityID, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid city_id"))
			return
		}
		query = query.Where("city_id = ?", cityID)
	}
	if v := c.Query("user_id"); v != "" {
		userID, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user_id"))
			return
		}
		query = query.Where("user_id = ?", userID)
	}
	if v := c.Query("status"); v != "" {
		if !models.ValidJobStatus(v) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("status = ?", v)
	}
	if v := c.Query("min_fee"); v != "" {
		minFee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid min_fee"))
			return
		}
		query = query.Where("fee >= ?", minFee)
	}

	sortField := c.DefaultQuery("sort", "created_at")
	switch sortField {
	case "created_at", "updated_at", "fee", "title":
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid sort field"))
		return
	}
	sortOrder := c.DefaultQuery("order", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid sort order"))
		return
	}

	var jobs []models.JobPost
	if err := query.Order(sortField + " " + sortOrder).Find(&jobs).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	if len(jobs) == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no jobs found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of jobs", jobs)
}

// GetJobByID returns a single job. Soft-deleted rows stay retrievable here;
// only the list endpoint filters them out.
func (jc *JobController) GetJobByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("job_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid job id"))
		return
	}

	var job models.JobPost
	if err := jc.DB.Preload("City").Preload("Categories.MinorCategory").First(&job, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("job not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job detail", job)
}

// UpdateJob applies a partial update; only fields present in the body are
// touched. The ownership gate has already loaded and authorized the job.
func (jc *JobController) UpdateJob(c *gin.Context) {
	job := jobFromContext(c)
	if job == nil {
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Summary     *string  `json:"summary"`
		Fee         *float64 `json:"fee"`
		ContactInfo *string  `json:"contact_info"`
		CityID      *uint    `json:"city_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("title cannot be empty"))
			return
		}
		updates["title"] = *req.Title
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Fee != nil {
		if *req.Fee < 0 || *req.Fee > 100 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("fee must be a percentage between 0 and 100"))
			return
		}
		updates["fee"] = *req.Fee
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}
	if req.CityID != nil {
		updates["city_id"] = *req.CityID
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	if err := jc.DB.Model(job).Updates(updates).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var updated models.JobPost
	if err := jc.DB.Preload("City").Preload("Categories.MinorCategory").First(&updated, job.ID).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job updated", updated)
}

// UpdateJobStatus accepts only the open/closed whitelist, matching the
// validation the application status update already had.
func (jc *JobController) UpdateJobStatus(c *gin.Context) {
	job := jobFromContext(c)
	if job == nil {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidJobStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be one of: open, closed"))
		return
	}

	if err := jc.DB.Model(job).Update("status", req.Status).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job status updated", gin.H{
		"job_id": job.ID,
		"status": req.Status,
	})
}

// UpdateJobLocation moves the job to another city.
func (jc *JobController) UpdateJobLocation(c *gin.Context) {
	job := jobFromContext(c)
	if job == nil {
		return
	}

	var req struct {
		CityID uint `json:"city_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var city models.City
	if err := jc.DB.First(&city, req.CityID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("city not found"))
		return
	}

	if err := jc.DB.Model(job).Update("city_id", req.CityID).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job location updated", gin.H{
		"job_id":  job.ID,
		"city_id": req.CityID,
	})
}

// SoftDeleteJob flags the row; it stays queryable by id.
func (jc *JobController) SoftDeleteJob(c *gin.Context) {
	job := jobFromContext(c)
	if job == nil {
		return
	}

	now := time.Now()
	if err := jc.DB.Model(job).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job deleted", gin.H{"job_id": job.ID})
}

// DeleteJob removes the row permanently, category links first.
func (jc *JobController) DeleteJob(c *gin.Context) {
	job := jobFromContext(c)
	if job == nil {
		return
	}

	err := jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_post_id = ?", job.ID).Delete(&models.JobCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JobPost{}, job.ID).Error
	})
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.InfoLogger.Printf("Job post %d permanently deleted", job.ID)
	utils.RespondJSON(c, http.StatusOK, "Job permanently deleted", gin.H{"job_id": job.ID})
}

func jobFromContext(c *gin.Context) *models.JobPost {
	val, exists := c.Get("job")
	if !exists {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("job not loaded"))
		return nil
	}
	job, ok := val.(models.JobPost)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("job not loaded"))
		return nil
	}
	return &job
}
