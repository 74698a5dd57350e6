package controllers

import (
	"errors"
	"net/http"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories returns the full two-level taxonomy.
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var majors []models.MajorCategory
	if err := cc.DB.Preload("MinorCategories").Find(&majors).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of categories", majors)
}

// CreateMajorCategory is admin-only (route gate).
func (cc *CategoryController) CreateMajorCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	major := models.MajorCategory{Name: req.Name}
	if err := cc.DB.Create(&major).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category name already exists"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Major category created", major)
}

// CreateMinorCategory is admin-only (route gate).
func (cc *CategoryController) CreateMinorCategory(c *gin.Context) {
	var req struct {
		MajorCategoryID uint   `json:"major_category_id" binding:"required"`
		Name            string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var major models.MajorCategory
	if err := cc.DB.First(&major, req.MajorCategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("major category not found"))
		return
	}

	minor := models.MinorCategory{MajorCategoryID: req.MajorCategoryID, Name: req.Name}
	if err := cc.DB.Create(&minor).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category name already exists"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Minor category created", minor)
}
