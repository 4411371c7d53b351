package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gorm.io/gorm"

	"resume-analyzer-go/internal/api/handler"
	"resume-analyzer-go/internal/processor"
)

// AnalyzeRequest 同步分析请求体
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analysisHandler *handler.AnalysisHandler) {
	api := h.Group("/api/v1")

	// 异步入口：上传文本文件，排队分析
	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		sourceChannel := ctx.PostForm("source_channel")

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := analysisHandler.HandleResumeUpload(c, file, fileHeader.Size, fileHeader.Filename, sourceChannel)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 同步入口：直接分析请求体中的文本
	api.POST("/resume/analyze", func(c context.Context, ctx *app.RequestContext) {
		var req AnalyzeRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		analysis, err := analysisHandler.HandleAnalyze(c, req.Text)
		if err != nil {
			// 输入错误返回400，其余按500处理
			if errors.Is(err, processor.ErrInputTooShort) || errors.Is(err, processor.ErrEmptyInput) {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, analysis)
	})

	// 查询已完成的分析结果
	api.GET("/resume/:uuid/analysis", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		if submissionUUID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少提交UUID"})
			return
		}

		record, err := analysisHandler.HandleGetAnalysis(c, submissionUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "分析结果不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
