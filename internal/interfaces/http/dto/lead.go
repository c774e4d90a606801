package dto

import "studio-site-api/internal/application/lead"

// WaitlistRequest 候补名单报名
type WaitlistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

func (r *WaitlistRequest) ToInput() lead.WaitlistInput {
	return lead.WaitlistInput{Name: r.Name, Email: r.Email}
}

// WaitlistResponse 邮件服务商返回的消息 ID
type WaitlistResponse struct {
	ID string `json:"id"`
}

// ProposalRequest 方案申请；必填项在应用层校验
type ProposalRequest struct {
	OwnerName    string `json:"ownerName"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
	ServiceArea  string `json:"serviceArea"`
	Industry     string `json:"industry"`
	Source       string `json:"source"`
}

func (r *ProposalRequest) ToInput() lead.ProposalInput {
	return lead.ProposalInput{
		OwnerName:    r.OwnerName,
		Email:        r.Email,
		BusinessName: r.BusinessName,
		ServiceArea:  r.ServiceArea,
		Industry:     r.Industry,
		Source:       r.Source,
	}
}

type ProposalResponse struct {
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}

// VoiceConfigResponse 浏览器语音组件的公开配置
type VoiceConfigResponse struct {
	PublicKey   string `json:"publicKey"`
	AssistantID string `json:"assistantId"`
}
