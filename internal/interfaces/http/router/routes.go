package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由；leadLimit 只作用于线索表单
func RegisterV1Routes(v1 *gin.RouterGroup, h *RouterHandlers, leadLimit gin.HandlerFunc) {
	// 原型生成
	prototype := v1.Group("/prototype")
	{
		prototype.POST("/generate", h.Prototype.Generate)
	}

	// 线索表单
	leads := v1.Group("", leadLimit)
	{
		leads.POST("/waitlist", h.Lead.JoinWaitlist)
		leads.POST("/proposals", h.Lead.RequestProposal)
	}

	// 语音助手
	v1.GET("/voice/config", h.Voice.Config)
}
