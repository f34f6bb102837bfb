package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/server/http/dto"
)

// BidHandler manages bid endpoints.
type BidHandler struct {
	facade BidFacade
}

// NewBidHandler constructs BidHandler.
func NewBidHandler(facade BidFacade) *BidHandler {
	return &BidHandler{facade: facade}
}

// Submit handles POST /api/projects/:id/bids.
func (h *BidHandler) Submit(c *gin.Context) {
	var req dto.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	bid, err := h.facade.SubmitBid(c.Request.Context(), CurrentIdentity(c), c.Param("id"), req.Amount, req.Proposal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBidResponse(*bid))
}

// Resolve handles PATCH /api/bids/:id.
func (h *BidHandler) Resolve(c *gin.Context) {
	var req dto.ResolveBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	decision := model.BidStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	bid, err := h.facade.ResolveBid(c.Request.Context(), CurrentIdentity(c), c.Param("id"), decision)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBidResponse(*bid))
}
