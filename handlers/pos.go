package handlers

import (
	"net/http"

	"simba/middleware"
	"simba/models"
	"simba/services/pos"
	"simba/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// POSHandler serves the point-of-sale endpoints.
type POSHandler struct {
	Service pos.POSService
}

func NewPOSHandler(svc pos.POSService) *POSHandler {
	return &POSHandler{Service: svc}
}

// operator names the signed-in admin for processedBy.
func operator(c *gin.Context) string {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return ""
	}
	if p.Email != "" {
		return p.Email
	}
	return p.ID
}

// SaleHandler records a walk-in sale.
func (h *POSHandler) SaleHandler(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	txn, err := h.Service.Sale(c.Request.Context(), req, operator(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if len(txn.Warnings) > 0 {
		getLogger(c).Warn("sale completed with warnings",
			zap.String("transactionId", txn.TransactionID),
			zap.Strings("warnings", txn.Warnings))
	}
	c.JSON(http.StatusCreated, txn)
}

// RefundHandler reverses a completed sale in full or in part.
func (h *POSHandler) RefundHandler(c *gin.Context) {
	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	txn, err := h.Service.Refund(c.Request.Context(), req, operator(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// SummaryHandler returns the today/week/month rollup.
func (h *POSHandler) SummaryHandler(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListTransactionsHandler pages through the ledger.
func (h *POSHandler) ListTransactionsHandler(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	filter := models.TransactionFilter{
		Type:          c.Query("type"),
		Status:        c.Query("status"),
		PaymentMethod: c.Query("paymentMethod"),
		From:          from,
		To:            to,
		Page:          queryInt(c, "page", 1),
		Limit:         pageLimit(c, 20, 100),
	}
	txns, total, err := h.Service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"pagination":   pagination(total, filter.Page, filter.Limit),
	})
}

// GetTransactionHandler fetches one transaction by TXN- id or document id.
func (h *POSHandler) GetTransactionHandler(c *gin.Context) {
	txn, err := h.Service.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}
