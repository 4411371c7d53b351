package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrInputTooShort    = errors.New("简历文本过短")
	ErrEmptyInput       = errors.New("简历文本为空")
	ErrAnalysisFailed   = errors.New("简历分析失败")
	ErrComponentMissing = errors.New("必需组件未配置")
)

// AnalyzeError 包含阶段信息的自定义错误
type AnalyzeError struct {
	Stage   string
	BaseErr error
	Detail  string
}

func (e *AnalyzeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (阶段:%s): %s", e.BaseErr, e.Stage, e.Detail)
	}
	return fmt.Sprintf("%s (阶段:%s)", e.BaseErr, e.Stage)
}

func (e *AnalyzeError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *AnalyzeError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewInputError(baseErr error, detail string) error {
	return &AnalyzeError{
		Stage:   "validate",
		BaseErr: baseErr,
		Detail:  detail,
	}
}

func NewStageError(stage string, detail string) error {
	return &AnalyzeError{
		Stage:   stage,
		BaseErr: ErrAnalysisFailed,
		Detail:  detail,
	}
}
