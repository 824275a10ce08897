package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ratinto/agri-credit-backend/internal/application/dto"
	"github.com/ratinto/agri-credit-backend/internal/application/usecase"
	"github.com/ratinto/agri-credit-backend/internal/auth"
	"github.com/ratinto/agri-credit-backend/internal/observability"
)

// LoanHandler serves the loan lifecycle endpoints.
type LoanHandler struct {
	applyUC    *usecase.ApplyLoanUseCase
	approveUC  *usecase.ApproveLoanUseCase
	rejectUC   *usecase.RejectLoanUseCase
	disburseUC *usecase.DisburseLoanUseCase
	repayUC    *usecase.RepayLoanUseCase
	getUC      *usecase.GetLoanUseCase
	historyUC  *usecase.GetLoanHistoryUseCase
	scheduleUC *usecase.GetRepaymentScheduleUseCase
	metrics    *observability.Metrics
}

// NewLoanHandler wires dependencies.
func NewLoanHandler(
	applyUC *usecase.ApplyLoanUseCase,
	approveUC *usecase.ApproveLoanUseCase,
	rejectUC *usecase.RejectLoanUseCase,
	disburseUC *usecase.DisburseLoanUseCase,
	repayUC *usecase.RepayLoanUseCase,
	getUC *usecase.GetLoanUseCase,
	historyUC *usecase.GetLoanHistoryUseCase,
	scheduleUC *usecase.GetRepaymentScheduleUseCase,
	metrics *observability.Metrics,
) *LoanHandler {
	return &LoanHandler{
		applyUC:    applyUC,
		approveUC:  approveUC,
		rejectUC:   rejectUC,
		disburseUC: disburseUC,
		repayUC:    repayUC,
		getUC:      getUC,
		historyUC:  historyUC,
		scheduleUC: scheduleUC,
		metrics:    metrics,
	}
}

// Apply handles POST /v1/loans. Farmer tokens apply for themselves; the
// farmer_id in the body must match the caller.
func (h *LoanHandler) Apply(c *gin.Context) {
	var req dto.ApplyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if c.GetString(ctxRole) == auth.RoleFarmer && req.FarmerID != c.GetString(ctxSubjectID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	resp, err := h.applyUC.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.LoanApplications.Add(c.Request.Context(), 1)
	}
	c.JSON(http.StatusCreated, resp)
}

// Approve handles POST /v1/loans/:loanId/approve. Bank only; the approving
// bank is taken from the token, never the body.
func (h *LoanHandler) Approve(c *gin.Context) {
	var req dto.ApproveLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	req.LoanID = strings.TrimSpace(c.Param("loanId"))
	req.BankID = c.GetString(ctxSubjectID)

	resp, err := h.approveUC.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.recordDecision(c, "approve")
	c.JSON(http.StatusOK, resp)
}

// Reject handles POST /v1/loans/:loanId/reject. Bank only.
func (h *LoanHandler) Reject(c *gin.Context) {
	var req dto.RejectLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	req.LoanID = strings.TrimSpace(c.Param("loanId"))
	req.BankID = c.GetString(ctxSubjectID)
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_rejection_reason"})
		return
	}

	resp, err := h.rejectUC.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.recordDecision(c, "reject")
	c.JSON(http.StatusOK, resp)
}

// Disburse handles POST /v1/loans/:loanId/disburse. Bank only; must be the
// approving bank.
func (h *LoanHandler) Disburse(c *gin.Context) {
	req := dto.DisburseLoanRequest{
		LoanID: strings.TrimSpace(c.Param("loanId")),
		BankID: c.GetString(ctxSubjectID),
	}

	resp, err := h.disburseUC.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.recordDecision(c, "disburse")
	c.JSON(http.StatusOK, resp)
}

// Repay handles POST /v1/loans/:loanId/repay. A farmer token constrains the
// repayment to their own loans; bank tokens may record repayments received
// out of band.
func (h *LoanHandler) Repay(c *gin.Context) {
	var req dto.RepayLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	req.LoanID = strings.TrimSpace(c.Param("loanId"))
	if c.GetString(ctxRole) == auth.RoleFarmer {
		req.FarmerID = c.GetString(ctxSubjectID)
	}

	resp, err := h.repayUC.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.Repayments.Add(c.Request.Context(), 1)
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/loans/:loanId.
func (h *LoanHandler) Get(c *gin.Context) {
	loanID := strings.TrimSpace(c.Param("loanId"))
	if loanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_loan_id"})
		return
	}

	resp, err := h.getUC.Execute(c.Request.Context(), dto.GetLoanRequest{LoanID: loanID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History handles GET /v1/farmers/:farmerId/loans.
func (h *LoanHandler) History(c *gin.Context) {
	farmerID := strings.TrimSpace(c.Param("farmerId"))
	if farmerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_farmer_id"})
		return
	}

	resp, err := h.historyUC.Execute(c.Request.Context(), dto.GetLoanHistoryRequest{FarmerID: farmerID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Schedule handles GET /v1/loans/:loanId/schedule.
func (h *LoanHandler) Schedule(c *gin.Context) {
	loanID := strings.TrimSpace(c.Param("loanId"))
	if loanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_loan_id"})
		return
	}

	resp, err := h.scheduleUC.Execute(c.Request.Context(), dto.GetRepaymentScheduleRequest{LoanID: loanID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LoanHandler) recordDecision(c *gin.Context, decision string) {
	if h.metrics == nil {
		return
	}
	h.metrics.LoanDecisions.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("decision", decision)))
}
