package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// MockClassifier 是用于测试的 Classifier 确定性桩实现
type MockClassifier struct {
	// Response 固定返回的响应内容
	Response string
	// Err 固定返回的错误
	Err error
	// Responses 按任务名返回不同响应，优先于 Response
	Responses map[string]string

	// CallCount 累计调用次数
	CallCount int
	// ReceivedTasks 记录所有调用的任务名
	ReceivedTasks []string
}

// Classify 实现 Classifier 接口
func (m *MockClassifier) Classify(ctx context.Context, task string, payload map[string]interface{}) (string, error) {
	m.CallCount++
	m.ReceivedTasks = append(m.ReceivedTasks, task)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Responses != nil {
		if resp, ok := m.Responses[task]; ok {
			return resp, nil
		}
	}
	return m.Response, nil
}

var _ Classifier = (*MockClassifier)(nil)

// MockChatModel 是用于测试的 model.ToolCallingChatModel 的模拟实现
type MockChatModel struct {
	// For single, repeatable response
	ExpectedResponse string
	ExpectedError    error

	ReceivedMessages []*schema.Message
}

// NewMockChatModel 创建一个返回固定响应的 MockChatModel
func NewMockChatModel(expectedResponse string, expectedError error) *MockChatModel {
	return &MockChatModel{
		ExpectedResponse: expectedResponse,
		ExpectedError:    expectedError,
		ReceivedMessages: make([]*schema.Message, 0),
	}
}

// Generate 模拟 LLM 的 Generate 方法
func (m *MockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	currentReceived := make([]*schema.Message, len(input))
	copy(currentReceived, input)
	m.ReceivedMessages = append(m.ReceivedMessages, currentReceived...)

	// 尊重上下文取消，便于测试超时行为
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ExpectedError != nil {
		return nil, m.ExpectedError
	}
	return schema.AssistantMessage(m.ExpectedResponse, nil), nil
}

// Stream 模拟 LLM 的 Stream 方法
func (m *MockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("streaming not implemented in MockChatModel")
}

// BindTools 模拟绑定工具的方法
func (m *MockChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

// WithTools 实现 model.ToolCallingChatModel 接口
func (m *MockChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if err := m.BindTools(tools); err != nil {
		return nil, err
	}
	return m, nil
}

var _ model.ToolCallingChatModel = (*MockChatModel)(nil)
