package storage

import "time"

// ResumeUploadMessage 简历上传消息，上传入口发布、分析消费者订阅
type ResumeUploadMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`          // 提交UUID，主键
	SubmissionTimestamp time.Time `json:"submission_timestamp"`     // 提交时间戳
	SourceChannel       string    `json:"source_channel,omitempty"` // 来源渠道
	OriginalFilename    string    `json:"original_filename"`        // 原始文件名
	OriginalFilePathOSS string    `json:"original_file_path_oss"`   // 原始文件在MinIO中的对象路径
	ParsedTextPathOSS   string    `json:"parsed_text_path_oss"`     // 解析文本在MinIO中的对象路径
	ParsedTextMD5       string    `json:"parsed_text_md5,omitempty"`

	// 小文本直接随消息携带，省一次对象存储往返
	ParsedText string `json:"parsed_text,omitempty"`
}
