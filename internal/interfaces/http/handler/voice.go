package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"studio-site-api/internal/config"
	"studio-site-api/internal/interfaces/http/dto"
	apperrors "studio-site-api/pkg/errors"
)

// VoiceHandler 语音助手组件的公开配置
type VoiceHandler struct {
	cfg config.VoiceConfig
}

func NewVoiceHandler(cfg *config.Config) *VoiceHandler {
	return &VoiceHandler{cfg: cfg.Voice}
}

// Config 返回公开 key 与助手 ID
// @Summary 语音组件配置
// @Tags Voice
// @Produce json
// @Success 200 {object} dto.Response[dto.VoiceConfigResponse]
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/voice/config [get]
func (h *VoiceHandler) Config(c *gin.Context) {
	publicKey := strings.TrimSpace(h.cfg.PublicKey)
	if publicKey == "" {
		dto.AppError(c, apperrors.ErrServiceUnavailable.WithDetail("voice public key not configured"), nil)
		return
	}
	dto.Success(c, dto.VoiceConfigResponse{
		PublicKey:   publicKey,
		AssistantID: strings.TrimSpace(h.cfg.AssistantID),
	})
}
