package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"medbuddy/config"
	appointmentRepo "medbuddy/database/repository/appointment"
	settingsRepo "medbuddy/database/repository/settings"
	slotRepo "medbuddy/database/repository/slot"
	"medbuddy/models"
	"medbuddy/services/reservation"
	"medbuddy/utils"
)

const (
	adminTokenTTL = 60 * time.Minute
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// AdminHandler serves the staff endpoints behind JWT auth.
type AdminHandler struct {
	Service  reservation.ReservationService
	Ledger   appointmentRepo.AppointmentRepository
	Slots    slotRepo.SlotRepository
	Settings settingsRepo.SettingsRepository
	Cache    *redis.Client
	Logger   *zap.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(
	svc reservation.ReservationService,
	ledger appointmentRepo.AppointmentRepository,
	slots slotRepo.SlotRepository,
	settings settingsRepo.SettingsRepository,
	cache *redis.Client,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		Service:  svc,
		Ledger:   ledger,
		Slots:    slots,
		Settings: settings,
		Cache:    cache,
		Logger:   logger,
	}
}

// Login checks the admin credentials and issues a short-lived token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Username != config.AppConfig.AdminUsername || !checkAdminPassword(req.Password) {
		h.Logger.Warn("admin login rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateAdminToken(adminTokenTTL)
	if err != nil {
		h.Logger.Error("failed to sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "temporary failure, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// checkAdminPassword accepts either a bcrypt hash or a plain value in config;
// hashes are recognized by their "$2" prefix.
func checkAdminPassword(candidate string) bool {
	stored := config.AppConfig.AdminPassword
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Dashboard aggregates appointments, slots, settings and ledger stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	appts, err := h.Ledger.ListAll(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	slots, err := h.Slots.ListAll(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	settings, err := h.Settings.Get(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	stats, err := h.dashboardStats(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if appts == nil {
		appts = []models.Appointment{}
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"appointments": appts,
		"slots":        slots,
		"settings":     settings,
		"stats":        stats,
	})
}

// dashboardStats serves counts from a short-lived Redis cache; stale stats
// for a few seconds are fine on the dashboard.
func (h *AdminHandler) dashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, statsCacheKey).Result(); err == nil {
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return stats, nil
			}
		}
	}

	stats, err := h.Ledger.Stats(ctx, time.Now().Format("2006-01-02"))
	if err != nil {
		return stats, err
	}

	if h.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := h.Cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// AddSlot publishes a new bookable slot.
func (h *AdminHandler) AddSlot(c *gin.Context) {
	var req models.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	slot, err := h.Service.AddSlot(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slot": slot})
}

// UpdateAppointment applies a staff status/metadata update.
func (h *AdminHandler) UpdateAppointment(c *gin.Context) {
	id := c.Param("id")
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointment": appt})
}

// UpdateSettings overwrites the admin settings singleton.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var settings models.AdminSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Settings.Update(c.Request.Context(), &settings); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
