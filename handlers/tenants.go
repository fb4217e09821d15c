package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	tenantRepo "bookwise/database/repository/tenant"
	"bookwise/models"
	"bookwise/utils"
)

// TenantHandler manages tenant account endpoints.
type TenantHandler struct {
	Repo tenantRepo.TenantRepository
}

func NewTenantHandler(repo tenantRepo.TenantRepository) *TenantHandler {
	return &TenantHandler{Repo: repo}
}

// CreateTenant handles POST /api/tenants.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	logger := getLogger(c)

	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Plan     string `json:"plan"`
		TimeZone string `json:"timeZone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: " + err.Error())
		return
	}

	tenant := models.Tenant{
		Name:  input.Name,
		Email: input.Email,
		Plan:  input.Plan,
		Availability: models.WeeklyAvailability{
			TimeZone: input.TimeZone,
		},
	}
	if err := h.Repo.Create(c.Request.Context(), &tenant); err != nil {
		logger.Error("Failed to create tenant", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create tenant")
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// GetTenant handles GET /api/tenants/:id.
func (h *TenantHandler) GetTenant(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	tenant, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to fetch tenant", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles DELETE /api/tenants/:id. The quota counter lives
// on the tenant document, so it is destroyed with the record.
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to delete tenant", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete tenant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
