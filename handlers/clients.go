package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"bookwise/models"
	clientService "bookwise/services/client"
	"bookwise/services/quota"
	"bookwise/utils"
)

// ClientHandler manages client lifecycle endpoints. Activation is the
// quota-guarded transition: a denied seat comes back as HTTP 402 with
// the allocator's user-facing reason, and an undecided transaction
// conflict as HTTP 503 so the caller knows to retry.
type ClientHandler struct {
	Service clientService.Service
	Quota   quota.Service
}

func NewClientHandler(svc clientService.Service, q quota.Service) *ClientHandler {
	return &ClientHandler{Service: svc, Quota: q}
}

// CreateClient handles POST /api/tenants/:id/clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: " + err.Error())
		return
	}

	created, decision, err := h.Service.CreateClient(c.Request.Context(), tenantID, models.Client{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		if errors.Is(err, quota.ErrRetryable) {
			utils.JSONError(c, http.StatusServiceUnavailable, "Too many concurrent updates, please retry")
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to create client", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": decision.Reason,
			"limit": decision.Limit,
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetClient handles GET /api/tenants/:id/clients/:clientID.
func (h *ClientHandler) GetClient(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")
	clientID := c.Param("clientID")

	client, err := h.Service.GetClient(c.Request.Context(), tenantID, clientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Client not found")
			return
		}
		logger.Error("Failed to fetch client", zap.String("clientId", clientID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// ListClients handles GET /api/tenants/:id/clients?status=active.
func (h *ClientHandler) ListClients(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	clients, err := h.Service.ListClients(c.Request.Context(), tenantID, c.Query("status"))
	if err != nil {
		logger.Error("Failed to list clients", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// ArchiveClient handles POST /api/tenants/:id/clients/:clientID/archive.
func (h *ClientHandler) ArchiveClient(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")
	clientID := c.Param("clientID")

	if err := h.Service.ArchiveClient(c.Request.Context(), tenantID, clientID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Client not found")
			return
		}
		if errors.Is(err, quota.ErrRetryable) {
			utils.JSONError(c, http.StatusServiceUnavailable, "Too many concurrent updates, please retry")
			return
		}
		logger.Error("Failed to archive client", zap.String("clientId", clientID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to archive client")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

// DeleteClient handles DELETE /api/tenants/:id/clients/:clientID.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")
	clientID := c.Param("clientID")

	if err := h.Service.DeleteClient(c.Request.Context(), tenantID, clientID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Client not found")
			return
		}
		if errors.Is(err, quota.ErrRetryable) {
			utils.JSONError(c, http.StatusServiceUnavailable, "Too many concurrent updates, please retry")
			return
		}
		logger.Error("Failed to delete client", zap.String("clientId", clientID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetQuota handles GET /api/tenants/:id/quota.
func (h *ClientHandler) GetQuota(c *gin.Context) {
	logger := getLogger(c)
	tenantID := c.Param("id")

	usage, err := h.Quota.GetUsage(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.Error("Failed to fetch quota usage", zap.String("tenantId", tenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch quota usage")
		return
	}
	c.JSON(http.StatusOK, usage)
}
