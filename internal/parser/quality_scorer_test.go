package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-analyzer-go/internal/types"
)

// buildRichResume 构造一份各维度都能得分的长简历文本
func buildRichResume() string {
	var b strings.Builder
	b.WriteString("Jane Doe\njane@x.com | 415-555-0100\n\n")
	b.WriteString("Summary\nSoftware engineer focused on backend development and programming.\n\n")
	b.WriteString("Experience\nDeveloper at Acme Corp 2019-2022\n")
	b.WriteString(strings.Repeat("built and operated production services with measurable impact ", 60))
	b.WriteString("\n\nEducation\nB.S. Computer Science, State University, 2019\n")
	b.WriteString("\nSkills\nGo, Python, Docker\n")
	return b.String()
}

func TestQualityScorer_ScoreEqualsSumOfSubscores(t *testing.T) {
	text := buildRichResume()
	contact := NewFieldExtractor().Extract(text)
	sections := NewSectionSegmenter().Segment(text)

	m := NewQualityScorer().Score(text, contact, sections)

	assert.Equal(t, m.Completeness+m.Clarity+m.Relevance+m.Formatting, m.Score)
	for name, sub := range map[string]int{
		"completeness": m.Completeness,
		"clarity":      m.Clarity,
		"relevance":    m.Relevance,
		"formatting":   m.Formatting,
	} {
		assert.GreaterOrEqual(t, sub, 0, name)
		assert.LessOrEqual(t, sub, 25, name)
	}
	assert.GreaterOrEqual(t, m.Score, 0)
	assert.LessOrEqual(t, m.Score, 100)
}

func TestQualityScorer_RichResumeScoresHigh(t *testing.T) {
	text := buildRichResume()
	contact := NewFieldExtractor().Extract(text)
	sections := NewSectionSegmenter().Segment(text)

	m := NewQualityScorer().Score(text, contact, sections)

	assert.Equal(t, 25, m.Completeness, "姓名/邮箱/电话/经历/教育齐全")
	assert.Equal(t, 25, m.Clarity, "篇幅充足且有换行")
	assert.Equal(t, 25, m.Relevance, "四个相关性关键词全部命中并触顶")
	assert.Equal(t, 25, m.Formatting)
	assert.Equal(t, 100, m.Score)
}

func TestQualityScorer_SparseTextScoresLow(t *testing.T) {
	text := "short note"
	m := NewQualityScorer().Score(text, &types.ContactFields{}, &types.SectionSet{})

	assert.Equal(t, 0, m.Completeness)
	assert.Equal(t, 0, m.Clarity, "负的子分截断到0")
	assert.Equal(t, 0, m.Relevance)
	assert.Equal(t, 0, m.Formatting)
	assert.Equal(t, 0, m.Score)
}

func TestQualityScorer_NilInputsTreatedAsMissing(t *testing.T) {
	m := NewQualityScorer().Score("", nil, nil)
	assert.Equal(t, 0, m.Score)
}

func TestQualityScorer_ClarityPenalizesExtremes(t *testing.T) {
	q := NewQualityScorer()

	// 51个词：不足80扣5，有换行加5，净0
	short := strings.Repeat("word ", 49) + "word\nend"
	m := q.Score(short, nil, nil)
	assert.Equal(t, 0, m.Clarity)

	// 超过1200个词：10+10+5-10
	long := strings.Repeat("word ", 1300) + "\n"
	m = q.Score(long, nil, nil)
	assert.Equal(t, 15, m.Clarity)
}

func TestQualityScorer_RelevanceCapped(t *testing.T) {
	text := "developer engineer programming software"
	m := NewQualityScorer().Score(text, nil, nil)

	// 4×8=32 截断到25
	assert.Equal(t, 25, m.Relevance)
}

func TestQualityScorer_Deterministic(t *testing.T) {
	text := buildRichResume()
	contact := NewFieldExtractor().Extract(text)
	sections := NewSectionSegmenter().Segment(text)

	q := NewQualityScorer()
	first := q.Score(text, contact, sections)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, q.Score(text, contact, sections))
	}
}
