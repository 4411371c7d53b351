package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"
)

// Classifier AI分类能力接口。
// 实现可以是真实的模型客户端，也可以是测试用的确定性桩。
// 返回值是未经结构化处理的原始响应文本，调用方必须将其视为不可信内容，
// 自行做宽松的JSON提取和错误处理。
type Classifier interface {
	// Classify 执行一次同步的分类请求。task 标识任务类型（用于选择提示词），
	// payload 是任务负载。单次调用自带超时；失败不在此层重试，回退策略属于调用方。
	Classify(ctx context.Context, task string, payload map[string]interface{}) (string, error)
}

// LLMClassifier 基于eino聊天模型实现的Classifier
type LLMClassifier struct {
	llmModel model.ToolCallingChatModel

	// 任务到系统提示词的映射
	taskPrompts map[string]string

	// 单次调用超时
	callTimeout time.Duration

	logger *log.Logger
}

// LLMClassifierOption LLM分类器的配置选项
type LLMClassifierOption func(*LLMClassifier)

// WithCallTimeout 设置单次调用超时
func WithCallTimeout(d time.Duration) LLMClassifierOption {
	return func(c *LLMClassifier) {
		c.callTimeout = d
	}
}

// WithTaskPrompt 覆盖指定任务的系统提示词
func WithTaskPrompt(task, prompt string) LLMClassifierOption {
	return func(c *LLMClassifier) {
		c.taskPrompts[task] = prompt
	}
}

// WithClassifierLogger 设置日志记录器
func WithClassifierLogger(logger *log.Logger) LLMClassifierOption {
	return func(c *LLMClassifier) {
		c.logger = logger
	}
}

// NewLLMClassifier 创建新的LLM分类器
func NewLLMClassifier(llmModel model.ToolCallingChatModel, options ...LLMClassifierOption) *LLMClassifier {
	c := &LLMClassifier{
		llmModel:    llmModel,
		taskPrompts: make(map[string]string),
		callTimeout: 30 * time.Second,
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Classify 实现Classifier接口。
// payload 中的 "text" 字段作为 user message 发送；其余字段序列化为JSON附加在后面。
func (c *LLMClassifier) Classify(ctx context.Context, task string, payload map[string]interface{}) (string, error) {
	if c.llmModel == nil {
		return "", fmt.Errorf("LLM模型未初始化")
	}

	systemContent, ok := c.taskPrompts[task]
	if !ok {
		return "", fmt.Errorf("未知的分类任务: %s", task)
	}

	userContent := buildUserContent(payload)
	messages := []*einoschema.Message{
		{Role: "system", Content: systemContent},
		{Role: "user", Content: userContent},
	}

	c.logger.Printf("[LLMClassifier] task=%s, user prompt: %.50s...", task, userContent)

	// 带超时的上下文，继承上游取消信号。
	// 流水线契约是单次尝试，超时或失败由调用方的确定性回退兜底。
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	response, err := c.llmModel.Generate(callCtx, messages)
	if err != nil {
		c.logger.Printf("[LLMClassifier] LLM call failed for task %s: %v", task, err)
		return "", fmt.Errorf("LLM Generate failed: %w", err)
	}

	c.logger.Printf("[LLMClassifier] LLM response: %.50s", response.Content)
	return response.Content, nil
}

// buildUserContent 将payload拼装为user message内容
func buildUserContent(payload map[string]interface{}) string {
	if payload == nil {
		return ""
	}
	text, _ := payload["text"].(string)
	rest := make(map[string]interface{})
	for k, v := range payload {
		if k == "text" {
			continue
		}
		rest[k] = v
	}
	if len(rest) == 0 {
		return text
	}
	restJSON, err := json.Marshal(rest)
	if err != nil {
		return text
	}
	if text == "" {
		return string(restJSON)
	}
	return fmt.Sprintf("%s\n\n%s", text, string(restJSON))
}
