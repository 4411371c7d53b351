package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"resume-analyzer-go/internal/config"
)

// 默认存储桶名称，配置缺省时使用
const (
	defaultOriginalsBucket  = "resumes-original"
	defaultParsedTextBucket = "resumes-parsed-text"
)

// MinIO 对象存储适配器。原始简历和解析文本分桶存放。
type MinIO struct {
	client         *minio.Client
	cfg            *config.MinIOConfig
	originalBucket string
	parsedBucket   string
	logger         *log.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Printf("[MinIO] Initialization failed: %v", err)
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:         client,
		cfg:            cfg,
		originalBucket: cfg.OriginalsBucket,
		parsedBucket:   cfg.ParsedTextBucket,
		logger:         logger,
	}
	if m.originalBucket == "" {
		m.originalBucket = defaultOriginalsBucket
	}
	if m.parsedBucket == "" {
		m.parsedBucket = defaultParsedTextBucket
	}

	if err := m.ensureBucketExists(m.originalBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始简历存储桶 %s 存在失败: %w", m.originalBucket, err)
	}
	if err := m.ensureBucketExists(m.parsedBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保解析文本存储桶 %s 存在失败: %w", m.parsedBucket, err)
	}

	return m, nil
}

// ensureBucketExists 确保存储桶存在，不存在则创建
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		m.logger.Printf("[MinIO] Bucket %s does not exist, creating...", bucketName)
		if err := m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
	}
	return nil
}

// UploadOriginalResume 上传原始简历文件，返回对象路径
func (m *MinIO) UploadOriginalResume(ctx context.Context, submissionUUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("%s/%s", submissionUUID, filename)
	_, err := m.client.PutObject(ctx, m.originalBucket, objectName, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		m.logger.Printf("[MinIO] 上传原始简历失败 %s: %v", objectName, err)
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.originalBucket, objectName, err)
	}
	return objectName, nil
}

// UploadParsedText 上传解析后的纯文本，返回对象路径
func (m *MinIO) UploadParsedText(ctx context.Context, submissionUUID string, text string) (string, error) {
	objectName := fmt.Sprintf("%s.txt", submissionUUID)
	_, err := m.client.PutObject(ctx, m.parsedBucket, objectName, strings.NewReader(text), int64(len(text)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		m.logger.Printf("[MinIO] 上传解析文本失败 %s: %v", objectName, err)
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.parsedBucket, objectName, err)
	}
	return objectName, nil
}

// GetParsedText 读取解析文本内容
func (m *MinIO) GetParsedText(ctx context.Context, objectName string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.parsedBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("获取对象 %s/%s 失败: %w", m.parsedBucket, objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("读取对象 %s/%s 内容失败: %w", m.parsedBucket, objectName, err)
	}
	return string(data), nil
}

// GetOriginalResume 读取原始简历文件内容
func (m *MinIO) GetOriginalResume(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", m.originalBucket, objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 内容失败: %w", m.originalBucket, objectName, err)
	}
	return data, nil
}

// DeleteParsedText 删除解析文本对象，用于失败回滚
func (m *MinIO) DeleteParsedText(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, m.parsedBucket, objectName, minio.RemoveObjectOptions{})
}
