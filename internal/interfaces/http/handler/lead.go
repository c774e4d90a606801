package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studio-site-api/internal/application/lead"
	"studio-site-api/internal/infrastructure/email"
	"studio-site-api/internal/infrastructure/sheets"
	"studio-site-api/internal/interfaces/http/dto"
	apperrors "studio-site-api/pkg/errors"
)

// LeadHandler 线索表单
type LeadHandler struct {
	service *lead.Service
}

func NewLeadHandler(service *lead.Service) *LeadHandler {
	return &LeadHandler{service: service}
}

// JoinWaitlist 候补名单报名
// @Summary 候补名单报名
// @Tags Lead
// @Accept json
// @Produce json
// @Param body body dto.WaitlistRequest true "报名信息"
// @Success 200 {object} dto.Response[dto.WaitlistResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/waitlist [post]
func (h *LeadHandler) JoinWaitlist(c *gin.Context) {
	var req dto.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	id, err := h.service.JoinWaitlist(c.Request.Context(), req.ToInput())
	if err != nil {
		writeLeadError(c, err)
		return
	}
	dto.Success(c, dto.WaitlistResponse{ID: id})
}

// RequestProposal 方案申请
// @Summary 方案申请
// @Tags Lead
// @Accept json
// @Produce json
// @Param body body dto.ProposalRequest true "申请信息"
// @Success 200 {object} dto.Response[dto.ProposalResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/proposals [post]
func (h *LeadHandler) RequestProposal(c *gin.Context) {
	var req dto.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	receipt, err := h.service.RequestProposal(c.Request.Context(), req.ToInput())
	if err != nil {
		writeLeadError(c, err)
		return
	}
	dto.Success(c, dto.ProposalResponse{RequestID: receipt.RequestID, Message: receipt.Message})
}

// writeLeadError 日志已在应用层记录
func writeLeadError(c *gin.Context, err error) {
	var (
		missing  *lead.MissingFieldsError
		delivery *lead.DeliveryError
		rejected *sheets.RejectedError
	)
	switch {
	case errors.As(err, &missing):
		dto.BadRequest(c, missing.Error())
	case errors.Is(err, sheets.ErrNotConfigured), errors.Is(err, email.ErrNotConfigured):
		dto.AppError(c, apperrors.ErrMisconfigured.WithDetail(err.Error()), nil)
	case errors.As(err, &delivery):
		dto.AppError(c, apperrors.ErrMailerFailed, nil)
	case errors.As(err, &rejected):
		dto.AppError(c, apperrors.ErrWebhookFailed.WithDetail(rejected.Message), nil)
	default:
		dto.AppError(c, apperrors.ErrWebhookFailed.WithDetail(err.Error()), nil)
	}
}
