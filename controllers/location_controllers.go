package controllers

import (
	"errors"
	"net/http"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

// GetAllLocations returns every region with its cities.
func (lc *LocationController) GetAllLocations(c *gin.Context) {
	var regions []models.Region
	if err := lc.DB.Preload("Cities").Find(&regions).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of locations", regions)
}

// CreateRegion is admin-only (route gate).
func (lc *LocationController) CreateRegion(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	region := models.Region{Name: req.Name}
	if err := lc.DB.Create(&region).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("region name already exists"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Region created", region)
}

// CreateCity is admin-only (route gate).
func (lc *LocationController) CreateCity(c *gin.Context) {
	var req struct {
		RegionID uint   `json:"region_id" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var region models.Region
	if err := lc.DB.First(&region, req.RegionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("region not found"))
		return
	}

	city := models.City{RegionID: req.RegionID, Name: req.Name}
	if err := lc.DB.Create(&city).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "City created", city)
}
