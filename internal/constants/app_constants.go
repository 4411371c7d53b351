package constants

import "time"

const (
	// Application-level constants
	DefaultParserVersion = "analyzer-v1"

	// 简历处理状态
	StatusPendingAnalysis         = "PENDING_ANALYSIS"
	StatusAnalysisCompleted       = "ANALYSIS_COMPLETED"
	StatusAnalysisFailed          = "ANALYSIS_FAILED"
	StatusContentDuplicateSkipped = "CONTENT_DUPLICATE_SKIPPED"

	// Redis keys
	ParsedTextMD5SetKey   = "resumes:text_md5s" // 解析文本MD5集合，用于内容去重
	AnalysisCachePrefix   = "analysis:"
	AnalysisCacheDuration = 24 * time.Hour
)

// AllowedStatusesForAnalysis 消费端幂等检查允许进入分析的状态集合
var AllowedStatusesForAnalysis = map[string]bool{
	StatusPendingAnalysis: true,
	StatusAnalysisFailed:  true, // 允许重新分析失败的提交
}

// IsStatusAllowed 判断状态是否在允许集合内
func IsStatusAllowed(status string, allowed map[string]bool) bool {
	return allowed[status]
}
