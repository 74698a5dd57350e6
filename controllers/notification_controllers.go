package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/briankang0314/machsuri-server/notifier"
	"github.com/briankang0314/machsuri-server/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// createNotification persists a notification and pushes it to the recipient
// if they hold an open websocket connection. Failures are logged only; a
// notification must never fail the request that triggered it.
func createNotification(db *gorm.DB, userID uint, notifType, message string) {
	notif := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}
	if err := db.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("failed to create notification for user %d: %v", userID, err)
		return
	}
	notifier.NotifyUser(userID, notif)
}

// GetMyNotifications returns the caller's notifications, newest first.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID := currentUserID(c)

	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&notifs).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My notifications", notifs)
}

// MarkNotificationRead sets the read flag on one of the caller's rows.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}
	if notif.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("not your notification"))
		return
	}

	if err := nc.DB.Model(&notif).Update("is_read", true).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	nc.pushUnreadCount(userID)
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", gin.H{"notification_id": notif.ID})
}

// MarkAllNotificationsRead clears the caller's unread set.
func (nc *NotificationController) MarkAllNotificationsRead(c *gin.Context) {
	userID := currentUserID(c)

	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	nc.pushUnreadCount(userID)
	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", nil)
}

func (nc *NotificationController) pushUnreadCount(userID uint) {
	var count int64
	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error; err != nil {
		return
	}
	notifier.NotifyUnreadCount(userID, count)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NotificationStreamHandler upgrades the connection and registers it with the
// hub. The read loop exists only to detect the client going away.
func (nc *NotificationController) NotificationStreamHandler(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	notifier.RegisterClient(conn, userID)
	utils.InfoLogger.Printf("Notification stream opened for user %d", userID)

	go func() {
		defer notifier.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
