package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/processor"
	"resume-analyzer-go/internal/storage"
	"resume-analyzer-go/internal/storage/models"
	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/internal/utils"
)

// 超过该大小的解析文本不随消息携带，消费者从MinIO取
const inlineTextLimit = 64 * 1024

// AnalysisHandler 简历分析入口，协调上传、排队和分析流程
type AnalysisHandler struct {
	cfg      *config.Config
	storage  *storage.Storage
	analyzer *processor.ResumeAnalyzer
}

// NewAnalysisHandler 创建分析处理器
func NewAnalysisHandler(cfg *config.Config, st *storage.Storage, analyzer *processor.ResumeAnalyzer) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:      cfg,
		storage:  st,
		analyzer: analyzer,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// HandleResumeUpload 处理简历文本上传。
// 上游转换器已把二进制转成纯文本，这里收到的就是待分析文本。
// 内容MD5去重后入库、上传MinIO并发布分析消息。
func (h *AnalysisHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileSize int64,
	filename string, sourceChannel string) (*ResumeUploadResponse, error) {

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	text := string(fileBytes)
	textMD5 := utils.CalculateMD5(fileBytes)

	// 内容去重：同一份解析文本只分析一次
	if h.storage.Redis != nil {
		exists, err := h.storage.Redis.CheckAndAddParsedTextMD5(ctx, textMD5)
		if err != nil {
			logger.Error().Err(err).Str("md5", textMD5).Msg("查询Redis文本MD5集合失败")
			return nil, fmt.Errorf("检查内容重复性时Redis查询失败: %w", err)
		}
		if exists {
			logger.Info().Str("md5", textMD5).Str("filename", filename).Msg("检测到重复内容，跳过处理")
			return &ResumeUploadResponse{
				Status: constants.StatusContentDuplicateSkipped,
			}, nil
		}
	}

	submissionUUID := uuid.New().String()
	if sourceChannel == "" {
		sourceChannel = "web_upload"
	}

	// 上传原始文件和解析文本到MinIO
	var originalPath, parsedPath string
	if h.storage.MinIO != nil {
		originalPath, err = h.storage.MinIO.UploadOriginalResume(ctx, submissionUUID, filename,
			bytes.NewReader(fileBytes), fileSize, "text/plain")
		if err != nil {
			h.rollbackMD5(ctx, textMD5)
			return nil, fmt.Errorf("上传原始文件失败: %w", err)
		}
		parsedPath, err = h.storage.MinIO.UploadParsedText(ctx, submissionUUID, text)
		if err != nil {
			h.rollbackMD5(ctx, textMD5)
			return nil, fmt.Errorf("上传解析文本失败: %w", err)
		}
	}

	// 创建提交记录
	now := time.Now()
	if h.storage.MySQL != nil {
		sub := &models.ResumeSubmission{
			SubmissionUUID:      submissionUUID,
			SubmissionTimestamp: now,
			SourceChannel:       sourceChannel,
			OriginalFilename:    filename,
			OriginalFilePathOSS: originalPath,
			ParsedTextPathOSS:   parsedPath,
			ParsedTextMD5:       textMD5,
			ProcessingStatus:    constants.StatusPendingAnalysis,
			ParserVersion:       h.analyzer.Settings.ParserVersion,
		}
		if err := h.storage.MySQL.CreateSubmission(ctx, sub); err != nil {
			h.rollbackMD5(ctx, textMD5)
			return nil, fmt.Errorf("创建提交记录失败: %w", err)
		}
	}

	// 发布分析消息
	if h.storage.RabbitMQ != nil {
		msg := &storage.ResumeUploadMessage{
			SubmissionUUID:      submissionUUID,
			SubmissionTimestamp: now,
			SourceChannel:       sourceChannel,
			OriginalFilename:    filename,
			OriginalFilePathOSS: originalPath,
			ParsedTextPathOSS:   parsedPath,
			ParsedTextMD5:       textMD5,
		}
		if len(text) <= inlineTextLimit {
			msg.ParsedText = text
		}
		if err := h.storage.RabbitMQ.PublishUploadMessage(ctx, msg); err != nil {
			logger.Error().Err(err).Str("uuid", submissionUUID).Msg("发布分析消息失败")
			h.rollbackMD5(ctx, textMD5)
			return nil, fmt.Errorf("发布分析消息失败: %w", err)
		}
	}

	logger.Info().
		Str("uuid", submissionUUID).
		Str("filename", filename).
		Int("text_len", len(text)).
		Msg("简历上传已受理")

	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusPendingAnalysis,
	}, nil
}

// rollbackMD5 上传流程失败时把MD5从去重集合里撤掉，允许重试
func (h *AnalysisHandler) rollbackMD5(ctx context.Context, md5Hex string) {
	if h.storage.Redis == nil {
		return
	}
	if err := h.storage.Redis.RemoveParsedTextMD5(ctx, md5Hex); err != nil {
		logger.Warn().Err(err).Str("md5", md5Hex).Msg("回滚MD5失败")
	}
}

// HandleAnalyze 同步分析一段简历文本，不落库。
// 供调试和低延迟调用方使用。
func (h *AnalysisHandler) HandleAnalyze(ctx context.Context, text string) (*types.ResumeAnalysis, error) {
	return h.analyzer.Analyze(ctx, text)
}

// HandleGetAnalysis 查询已完成的分析结果，优先走Redis缓存
func (h *AnalysisHandler) HandleGetAnalysis(ctx context.Context, submissionUUID string) (*models.ResumeAnalysisRecord, error) {
	if h.storage.MySQL == nil {
		return nil, fmt.Errorf("持久化层未配置")
	}
	record, err := h.storage.MySQL.GetAnalysis(ctx, submissionUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("查询分析记录失败: %w", err)
	}
	return record, nil
}

// ProcessUploadMessage 消费端入口：取文本、跑流水线、落库并更新状态。
// 幂等：只有处于允许状态的提交才会被分析。
func (h *AnalysisHandler) ProcessUploadMessage(ctx context.Context, msg *storage.ResumeUploadMessage) error {
	// 状态检查，防止重复消费
	if h.storage.MySQL != nil {
		sub, err := h.storage.MySQL.GetSubmission(ctx, msg.SubmissionUUID)
		if err != nil {
			return fmt.Errorf("查询提交记录失败: %w", err)
		}
		if !constants.IsStatusAllowed(sub.ProcessingStatus, constants.AllowedStatusesForAnalysis) {
			logger.Warn().
				Str("uuid", msg.SubmissionUUID).
				Str("status", sub.ProcessingStatus).
				Msg("提交状态不允许分析，跳过")
			return nil
		}
	}

	// 取解析文本：优先消息内联，退回MinIO
	text := msg.ParsedText
	if text == "" && h.storage.MinIO != nil && msg.ParsedTextPathOSS != "" {
		var err error
		text, err = h.storage.MinIO.GetParsedText(ctx, msg.ParsedTextPathOSS)
		if err != nil {
			return fmt.Errorf("从MinIO读取解析文本失败: %w", err)
		}
	}

	analysis, err := h.analyzer.Analyze(ctx, text)
	if err != nil {
		// 输入错误是终态，标记失败后吞掉错误避免消息重投
		logger.Error().Err(err).Str("uuid", msg.SubmissionUUID).Msg("分析失败")
		h.markStatus(ctx, msg.SubmissionUUID, constants.StatusAnalysisFailed)
		return nil
	}

	if h.storage.MySQL != nil {
		if err := h.storage.MySQL.SaveAnalysis(ctx, msg.SubmissionUUID, analysis); err != nil {
			h.markStatus(ctx, msg.SubmissionUUID, constants.StatusAnalysisFailed)
			return fmt.Errorf("保存分析结果失败: %w", err)
		}
	}
	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheAnalysis(ctx, msg.SubmissionUUID, analysis); err != nil {
			logger.Warn().Err(err).Str("uuid", msg.SubmissionUUID).Msg("缓存分析结果失败")
		}
	}
	h.markStatus(ctx, msg.SubmissionUUID, constants.StatusAnalysisCompleted)

	logger.Info().
		Str("uuid", msg.SubmissionUUID).
		Int("quality_score", analysis.Quality.Score).
		Str("method", string(analysis.ExtractionMethod)).
		Msg("分析完成")
	return nil
}

func (h *AnalysisHandler) markStatus(ctx context.Context, submissionUUID, status string) {
	if h.storage.MySQL == nil {
		return
	}
	if err := h.storage.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, status); err != nil {
		logger.Warn().Err(err).Str("uuid", submissionUUID).Str("status", status).Msg("更新提交状态失败")
	}
}
