package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

// defaultMaxHeaderLength 超过该长度的行被认为是正文段落而非章节标题
const defaultMaxHeaderLength = 50

// sectionPattern 章节标题模式，按优先级排列，首个匹配生效
type sectionPattern struct {
	kind types.SectionKind
	re   *regexp.Regexp
}

// 固定的章节标题模式表。进程级只读常量，运行期不修改。
var sectionPatterns = []sectionPattern{
	{types.SectionSummary, regexp.MustCompile(`(?i)^\W*(professional\s+|career\s+)?(summary|profile|objective|about\s+me)\b`)},
	{types.SectionExperience, regexp.MustCompile(`(?i)^\W*(work\s+|professional\s+)?(experience|employment)(\s+history)?\b`)},
	{types.SectionEducation, regexp.MustCompile(`(?i)^\W*(education|academic)(\s+background)?\b`)},
	{types.SectionSkills, regexp.MustCompile(`(?i)^\W*(technical\s+|core\s+)?(skills?|competenc(y|ies))\b`)},
	{types.SectionProjects, regexp.MustCompile(`(?i)^\W*(projects?|portfolio)\b`)},
	{types.SectionAchievements, regexp.MustCompile(`(?i)^\W*(achievements?|awards?|honors?)\b`)},
	{types.SectionCertifications, regexp.MustCompile(`(?i)^\W*(certifications?|licenses?)\b`)},
}

// SectionSegmenter 将原始文本按章节标题切分为带标签的章节。
// 没有失败模式：总是返回尽力而为的结果，可能为空。
type SectionSegmenter struct {
	maxHeaderLength int
}

// SegmenterOption 分段器配置选项
type SegmenterOption func(*SectionSegmenter)

// WithMaxHeaderLength 设置标题行长度阈值
func WithMaxHeaderLength(n int) SegmenterOption {
	return func(s *SectionSegmenter) {
		if n > 0 {
			s.maxHeaderLength = n
		}
	}
}

// NewSectionSegmenter 创建新的章节分段器
func NewSectionSegmenter(options ...SegmenterOption) *SectionSegmenter {
	s := &SectionSegmenter{maxHeaderLength: defaultMaxHeaderLength}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// segment 扫描过程中的中间结构
type segment struct {
	kind  types.SectionKind
	title string
	lines []string
}

// Segment 逐行扫描文本，识别章节标题并把后续行归入当前章节。
// 第一个标题之前的行不进入任何章节（联系信息提取直接使用原始文本开头）。
// 同一类型的标题重复出现时保留最后一块，保证章节内容仍是原文的子序列。
func (s *SectionSegmenter) Segment(text string) *types.SectionSet {
	lines := strings.Split(text, "\n")

	var segments []*segment
	var current *segment

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if kind, ok := s.matchHeader(trimmed); ok {
			current = &segment{kind: kind, title: trimmed}
			segments = append(segments, current)
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}

	// 每种类型保留最后一个段，按其在文中出现的顺序输出
	lastByKind := make(map[types.SectionKind]*segment, len(segments))
	for _, seg := range segments {
		lastByKind[seg.kind] = seg
	}

	result := &types.SectionSet{}
	for _, seg := range segments {
		if lastByKind[seg.kind] != seg {
			continue
		}
		result.Sections = append(result.Sections, types.Section{
			Kind:  seg.kind,
			Title: seg.title,
			Text:  strings.TrimSpace(strings.Join(seg.lines, "\n")),
		})
	}
	return result
}

// matchHeader 判断一行是否是章节标题。
// 长行几乎不可能是标题，先用长度阈值过滤，再按模式表顺序匹配。
func (s *SectionSegmenter) matchHeader(line string) (types.SectionKind, bool) {
	if line == "" || len(line) >= s.maxHeaderLength {
		return "", false
	}
	for _, p := range sectionPatterns {
		if p.re.MatchString(line) {
			return p.kind, true
		}
	}
	return "", false
}
