package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/server/http/dto"
	"github.com/polkiloo/gigmarket/internal/server/http/middleware"
)

const internalErrorMessage = "internal server error"

// CurrentIdentity extracts authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	return middleware.CurrentIdentity(c)
}

// respondError maps domain error kinds to HTTP statuses. Unclassified errors
// are attached to the context for the request logger and reported as 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrUnauthenticated), errors.Is(err, domainErrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrInvalidState),
		errors.Is(err, domainErrors.ErrInvalidSignature):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: internalErrorMessage})
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role.String()}
}

func toProjectResponse(p model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Title:       p.Title,
		Description: p.Description,
		Budget:      p.Budget,
		Deadline:    p.Deadline,
		Status:      string(p.Status),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toBidResponse(b model.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:           b.ID,
		ProjectID:    b.ProjectID,
		FreelancerID: b.FreelancerID,
		Amount:       b.Amount,
		Proposal:     b.Proposal,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toPaymentResponse(p *model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:           p.ID,
		ProjectID:    p.ProjectID,
		BidID:        p.BidID,
		CustomerID:   p.CustomerID,
		FreelancerID: p.FreelancerID,
		Amount:       p.Amount,
		Status:       string(p.Status),
		SessionID:    p.ExternalID,
		CreatedAt:    p.CreatedAt,
		CompletedAt:  p.CompletedAt,
	}
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
