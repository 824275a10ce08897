package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/application/usecase"
	"github.com/ratinto/agri-credit-backend/internal/observability"
)

// ScoreHandler serves trust score and offer endpoints.
type ScoreHandler struct {
	computeUC  *usecase.ComputeTrustScoreUseCase
	getUC      *usecase.GetTrustScoreUseCase
	offersUC   *usecase.GenerateOffersUseCase
	validateUC *usecase.ValidateCropUseCase
	metrics    *observability.Metrics
}

// NewScoreHandler wires dependencies.
func NewScoreHandler(
	computeUC *usecase.ComputeTrustScoreUseCase,
	getUC *usecase.GetTrustScoreUseCase,
	offersUC *usecase.GenerateOffersUseCase,
	validateUC *usecase.ValidateCropUseCase,
	metrics *observability.Metrics,
) *ScoreHandler {
	return &ScoreHandler{
		computeUC:  computeUC,
		getUC:      getUC,
		offersUC:   offersUC,
		validateUC: validateUC,
		metrics:    metrics,
	}
}

// ComputeTrustScore handles POST /v1/farmers/:farmerId/trust-score.
func (h *ScoreHandler) ComputeTrustScore(c *gin.Context) {
	farmerID := strings.TrimSpace(c.Param("farmerId"))
	if farmerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_farmer_id"})
		return
	}

	resp, err := h.computeUC.Execute(c.Request.Context(), dto.ComputeTrustScoreRequest{FarmerID: farmerID})
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ScoreComputations.Add(c.Request.Context(), 1)
	}
	c.JSON(http.StatusOK, resp)
}

// GetTrustScore handles GET /v1/farmers/:farmerId/trust-score.
func (h *ScoreHandler) GetTrustScore(c *gin.Context) {
	farmerID := strings.TrimSpace(c.Param("farmerId"))
	if farmerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_farmer_id"})
		return
	}

	resp, err := h.getUC.Execute(c.Request.Context(), dto.GetTrustScoreRequest{FarmerID: farmerID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateOffers handles GET /v1/farmers/:farmerId/loan-offers.
func (h *ScoreHandler) GenerateOffers(c *gin.Context) {
	farmerID := strings.TrimSpace(c.Param("farmerId"))
	if farmerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_farmer_id"})
		return
	}

	resp, err := h.offersUC.Execute(c.Request.Context(), dto.GenerateOffersRequest{FarmerID: farmerID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateCrop handles GET /v1/farms/:farmId/crops/:cropId/validation.
func (h *ScoreHandler) ValidateCrop(c *gin.Context) {
	farmID := strings.TrimSpace(c.Param("farmId"))
	cropID := strings.TrimSpace(c.Param("cropId"))
	if farmID == "" || cropID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_farm_or_crop_id"})
		return
	}

	resp, err := h.validateUC.Execute(c.Request.Context(), dto.ValidateCropRequest{FarmID: farmID, CropID: cropID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
