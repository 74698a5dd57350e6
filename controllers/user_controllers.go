package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register creates a new user. Initial category preferences may be supplied
// in the same call; they are inserted together with the user row.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name             string `json:"name" binding:"required"`
		Email            string `json:"email" binding:"required,email"`
		Password         string `json:"password" binding:"required,min=8"`
		PhoneNumber      string `json:"phone_number"`
		CityID           *uint  `json:"city_id"`
		Role             string `json:"role"`
		MinorCategoryIDs []uint `json:"minor_category_ids"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleGeneral
	}
	if role != models.RoleGeneral && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		CityID:      req.CityID,
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for _, minorID := range req.MinorCategoryIDs {
			pref := models.UserPreference{UserID: user.ID, MinorCategoryID: minorID}
			if err := tx.Create(&pref).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(err.Error(), "Duplicate entry") {
			utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered"))
			return
		}
		utils.RespondInternalError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login checks credentials and returns a JWT.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ? AND is_deleted = ?", input.Email, false).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  strings.ToLower(user.Role),
	})
}

// GetProfile returns the authenticated user's own row.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := uc.DB.Preload("City").Preload("Preferences.MinorCategory").First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

// GetUserByID is the public profile lookup.
func (uc *UserController) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var user models.User
	if err := uc.DB.Preload("City").Preload("Preferences.MinorCategory").
		Where("is_deleted = ?", false).First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User detail", gin.H{
		"id":                user.ID,
		"name":              user.Name,
		"city":              user.City,
		"profile_image_url": user.ProfileImageURL,
		"preferences":       user.Preferences,
		"created_at":        user.CreatedAt,
	})
}

// UpdateProfile applies a partial update of name/phone.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Name        *string `json:"name"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("name cannot be empty"))
			return
		}
		updates["name"] = *req.Name
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{"user_id": userID})
}

// UpdateLocation sets the user's city.
func (uc *UserController) UpdateLocation(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		CityID uint `json:"city_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var city models.City
	if err := uc.DB.First(&city, req.CityID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("city not found"))
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", userID).Update("city_id", req.CityID).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Location updated", gin.H{"city_id": req.CityID})
}

// UpdatePreferences replaces the user's minor-category preferences.
// Delete and re-insert run in one transaction so a failed insert cannot
// leave the user with half the old set gone.
func (uc *UserController) UpdatePreferences(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		MinorCategoryIDs []uint `json:"minor_category_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.MinorCategoryIDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("at least one minor category is required"))
		return
	}

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPreference{}).Error; err != nil {
			return err
		}
		for _, minorID := range req.MinorCategoryIDs {
			var minor models.MinorCategory
			if err := tx.First(&minor, minorID).Error; err != nil {
				return fmt.Errorf("minor category %d not found", minorID)
			}
			pref := models.UserPreference{UserID: userID, MinorCategoryID: minorID}
			if err := tx.Create(&pref).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Preferences updated", gin.H{
		"minor_category_ids": req.MinorCategoryIDs,
	})
}

// UploadProfileImage stores a profile picture under public/uploads with a
// uuid filename and saves its public URL on the user row.
func (uc *UserController) UploadProfileImage(c *gin.Context) {
	userID := currentUserID(c)

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unsupported image format"))
		return
	}

	uploadDir := "public/uploads/profile_images"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	imageURL := fmt.Sprintf("/uploads/profile_images/%s", filename)
	if err := uc.DB.Model(&models.User{}).Where("id = ?", userID).Update("profile_image_url", imageURL).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile image uploaded", gin.H{
		"profile_image_url": imageURL,
	})
}

// SoftDeleteUser flags the caller's account as deleted. The row stays in the
// table; login and token resolution skip it from then on.
func (uc *UserController) SoftDeleteUser(c *gin.Context) {
	userID := currentUserID(c)

	now := time.Now()
	result := uc.DB.Model(&models.User{}).Where("id = ? AND is_deleted = ?", userID, false).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now})
	if result.Error != nil {
		utils.RespondInternalError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Account deleted", gin.H{"user_id": userID})
}

// GetAllUsers is admin-only; the role gate is applied on the route.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Preload("City").Find(&users).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

func currentUserID(c *gin.Context) uint {
	val, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	id, _ := val.(uint)
	return id
}
