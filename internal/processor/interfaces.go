package processor

import (
	"context"

	"resume-analyzer-go/internal/types"
)

//
// 流水线各阶段的能力接口。
// internal/parser 提供默认实现，测试时可以整体替换。
//

// Segmenter 章节分段接口
type Segmenter interface {
	// Segment 将原始文本切分为带标签的章节集合
	Segment(text string) *types.SectionSet
}

// ContactExtractor 联系信息提取接口
type ContactExtractor interface {
	// Extract 从文本中提取联系信息，缺失字段为nil
	Extract(text string) *types.ContactFields
}

// SkillClassifier 技能提取与分类接口
type SkillClassifier interface {
	// Categorize 提取技能画像，并报告实际使用的提取方式
	Categorize(ctx context.Context, text string) (*types.SkillsProfile, types.ExtractionMethod)
}

// ExperienceParser 工作经历分析接口
type ExperienceParser interface {
	// Analyze 从经历文本中分析年限、职位、公司和行业
	Analyze(text string) *types.ExperienceProfile
}

// EducationParser 学历提取接口
type EducationParser interface {
	// Extract 提取学历条目，提不出时返回空切片
	Extract(text string) []types.EducationEntry
}

// Scorer 质量打分接口
type Scorer interface {
	// Score 基于文本和已提取的结构计算质量分
	Score(text string, contact *types.ContactFields, sections *types.SectionSet) types.QualityMetrics
}
