package parser

import (
	"strings"

	"resume-analyzer-go/internal/types"
)

// relevanceKeywords 相关性关键词，每命中一个加8分
var relevanceKeywords = []string{"developer", "engineer", "programming", "software"}

// QualityScorer 简历质量打分。
// 四个维度各自限制在 [0,25]，总分为四者之和并截断到 [0,100]。
// 打分完全确定性，只依赖已提取的结构和原始文本。
type QualityScorer struct{}

// NewQualityScorer 创建质量打分器
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{}
}

// Score 计算质量分。contact/sections 允许为零值，按缺失处理。
func (q *QualityScorer) Score(text string, contact *types.ContactFields, sections *types.SectionSet) types.QualityMetrics {
	m := types.QualityMetrics{
		Completeness: clampSub(q.completeness(contact, sections)),
		Clarity:      clampSub(q.clarity(text)),
		Relevance:    clampSub(q.relevance(text)),
		Formatting:   clampSub(q.formatting(text, sections)),
	}
	m.Score = clampTotal(m.Completeness + m.Clarity + m.Relevance + m.Formatting)
	return m
}

// completeness 关键要素齐全度，每项5分
func (q *QualityScorer) completeness(contact *types.ContactFields, sections *types.SectionSet) int {
	score := 0
	if contact != nil {
		if contact.Name != nil {
			score += 5
		}
		if contact.Email != nil {
			score += 5
		}
		if contact.Phone != nil {
			score += 5
		}
	}
	if sections != nil {
		if sections.Has(types.SectionExperience) {
			score += 5
		}
		if sections.Has(types.SectionEducation) || sections.Has(types.SectionSkills) {
			score += 5
		}
	}
	return score
}

// clarity 篇幅合理性。过短和过长都扣分。
func (q *QualityScorer) clarity(text string) int {
	wc := len(strings.Fields(text))

	score := 0
	if wc > 100 {
		score += 10
	}
	if wc > 300 {
		score += 10
	}
	if strings.Contains(text, "\n") {
		score += 5
	}
	if wc < 80 {
		score -= 5
	}
	if wc > 1200 {
		score -= 10
	}
	return score
}

// relevance 技术岗位相关性，每个关键词8分
func (q *QualityScorer) relevance(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range relevanceKeywords {
		if containsTerm(lower, kw) {
			score += 8
		}
	}
	return score
}

// formatting 结构规范性
func (q *QualityScorer) formatting(text string, sections *types.SectionSet) int {
	score := 0
	if sections != nil {
		if sections.Has(types.SectionSummary) {
			score += 5
		}
		if sections.Len() >= 3 {
			score += 10
		}
	}
	if eduYearRe.MatchString(text) {
		score += 5
	}
	if strings.Contains(text, "@") {
		score += 5
	}
	return score
}

func clampSub(n int) int {
	if n < 0 {
		return 0
	}
	if n > 25 {
		return 25
	}
	return n
}

func clampTotal(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
