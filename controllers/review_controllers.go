package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview validates the 1..5 rating at write time and rejects
// self-reviews. The reviewee gets a notification.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	reviewerID := currentUserID(c)

	var req struct {
		RevieweeID uint   `json:"reviewee_id" binding:"required"`
		Rating     *int   `json:"rating" binding:"required"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}
	if req.RevieweeID == reviewerID {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot review yourself"))
		return
	}

	var reviewee models.User
	if err := rc.DB.Where("is_deleted = ?", false).First(&reviewee, req.RevieweeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reviewee not found"))
		return
	}

	review := models.Review{
		RevieweeID: req.RevieweeID,
		ReviewerID: reviewerID,
		Rating:     *req.Rating,
		Comment:    req.Comment,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	createNotification(rc.DB, req.RevieweeID, models.NotificationTypeReview,
		fmt.Sprintf("You received a %d-star review", review.Rating))

	utils.RespondJSON(c, http.StatusCreated, "Review created", review)
}

// GetReviewsForUser lists a reviewee's reviews with the average rating.
func (rc *ReviewController) GetReviewsForUser(c *gin.Context) {
	revieweeID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var reviews []models.Review
	if err := rc.DB.Preload("Reviewer").Where("reviewee_id = ?", revieweeID).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var average float64
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		average = float64(total) / float64(len(reviews))
	}

	utils.RespondJSON(c, http.StatusOK, "Reviews for user", gin.H{
		"reviews":        reviews,
		"average_rating": average,
		"count":          len(reviews),
	})
}

// DeleteReview removes a review; the ownership gate has already confirmed
// the caller wrote it (or is an admin).
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	val, exists := c.Get("review")
	review, ok := val.(models.Review)
	if !exists || !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("review not loaded"))
		return
	}

	if err := rc.DB.Delete(&models.Review{}, review.ID).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Review deleted", gin.H{"review_id": review.ID})
}
