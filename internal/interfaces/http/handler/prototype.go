// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studio-site-api/internal/application/prototype"
	"studio-site-api/internal/config"
	"studio-site-api/internal/interfaces/http/dto"
	apperrors "studio-site-api/pkg/errors"
	"studio-site-api/pkg/logger"
)

const defaultMaxLogoBytes int64 = 5 << 20

// PrototypeHandler 原型站点方案生成
type PrototypeHandler struct {
	generator    *prototype.Generator
	maxLogoBytes int64
}

func NewPrototypeHandler(cfg *config.Config, generator *prototype.Generator) *PrototypeHandler {
	maxLogo := cfg.Prototype.MaxLogoBytes
	if maxLogo <= 0 {
		maxLogo = defaultMaxLogoBytes
	}
	return &PrototypeHandler{generator: generator, maxLogoBytes: maxLogo}
}

// Generate 同步生成站点方案
// @Summary 生成原型站点方案
// @Description 根据业务描述（可附 logo）调用模型生成品牌、站点地图与页面区块
// @Tags Prototype
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} dto.Response[dto.PrototypeGenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/prototype/generate [post]
func (h *PrototypeHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PrototypeGenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.BadRequest(c, "invalid form: "+err.Error())
		return
	}

	brief, err := prototype.ResolveBrief(req.ToBriefInput())
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	logo, err := h.readLogo(c)
	if err != nil {
		if apperrors.IsAppError(err) {
			dto.AppError(c, apperrors.AsAppError(err), nil)
			return
		}
		dto.BadRequest(c, "invalid logo: "+err.Error())
		return
	}

	start := time.Now()
	out, err := h.generator.Generate(ctx, brief, logo)
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}

	dto.Success(c, dto.NewPrototypeGenerateResponse(out, time.Since(start)))
}

// readLogo 未上传或为空文件时返回 nil
func (h *PrototypeHandler) readLogo(c *gin.Context) (*prototype.Logo, error) {
	fh, err := c.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}
	if fh.Size > h.maxLogoBytes {
		return nil, apperrors.ErrPayloadTooLarge.WithDetail(fmt.Sprintf("logo exceeds %d bytes", h.maxLogoBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxLogoBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxLogoBytes {
		return nil, apperrors.ErrPayloadTooLarge.WithDetail(fmt.Sprintf("logo exceeds %d bytes", h.maxLogoBytes))
	}

	return &prototype.Logo{
		MIMEType: strings.TrimSpace(fh.Header.Get("Content-Type")),
		Data:     data,
	}, nil
}

func (h *PrototypeHandler) writeGenerateError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var (
		briefErr *prototype.BriefError
		invErr   *prototype.InvocationError
		parseErr *prototype.ParseFailure
		valErr   *prototype.ValidationError
	)
	switch {
	case errors.As(err, &briefErr):
		dto.BadRequest(c, briefErr.Error())
	case prototype.IsConfigError(err):
		logger.Error(ctx, "prototype generation misconfigured", err)
		dto.AppError(c, apperrors.ErrLLMNotConfigured, nil)
	case errors.As(err, &invErr):
		logger.Error(ctx, "prototype model call failed", err)
		dto.AppError(c, apperrors.ErrLLMCallFailed.WithDetail(invErr.Error()), nil)
	case errors.As(err, &parseErr):
		raw := parseErr.Raw
		dto.AppError(c, apperrors.ErrModelOutputParse, &dto.ErrorDetail{Raw: &raw})
	case errors.As(err, &valErr):
		dto.AppError(c, apperrors.ErrValidationFailed, &dto.ErrorDetail{
			Details: fmt.Sprintf("%d issue(s)", len(valErr.Issues)),
			Issues:  dto.IssuesFrom(valErr.Issues),
		})
	default:
		logger.Error(ctx, "prototype generation failed", err)
		dto.AppError(c, apperrors.ErrInternalError, nil)
	}
}
