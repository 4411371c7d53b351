package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

// degreePattern 学位模式，按学位层级从高到低排列，首个匹配生效
type degreePattern struct {
	canonical string
	re        *regexp.Regexp
}

var degreePatterns = []degreePattern{
	{"Ph.D.", regexp.MustCompile(`(?i)\b(ph\.?\s?d\.?|doctorate|doctoral)\b`)},
	{"Master's", regexp.MustCompile(`(?i)\b(master(?:'?s)?|m\.?s\.?c?|m\.?eng|mba)\b`)},
	{"Bachelor's", regexp.MustCompile(`(?i)\b(bachelor(?:'?s)?|b\.?s\.?c?|b\.?a\.?|b\.?eng)\b`)},
	{"Associate", regexp.MustCompile(`(?i)\b(associate(?:'?s)?|a\.?a\.?s?)\b`)},
}

var (
	// 院校名：若干大写开头的词 + 机构关键词，可带 "of X" 尾缀。
	// 保持大小写敏感，靠大写区分专有名词和普通句子。
	institutionRe = regexp.MustCompile(`\b((?:[A-Z][\w.&'\-]*\s+)*(?:University|College|Institute|School)(?:\s+of\s+[A-Z][\w.&'\-]*(?:\s+[A-Z][\w.&'\-]*)*)?)`)
	gpaRe         = regexp.MustCompile(`(?i)\bgpa[:\s]*([0-4]\.\d{1,2})\b`)
	eduYearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	// "in X" 或 "of X" 之后到逗号、年份或行尾为专业名
	fieldOfStudyRe = regexp.MustCompile(`\b(?:in|of)\s+([A-Z][A-Za-z&\- ]+?)(?:\s*[,|]|\s+(?:19|20)\d{2}|$)`)
)

// EducationExtractor 从教育章节中提取学历条目。
// 以行为单位：含学位关键词的行开启一条记录，
// 院校、专业、年份和GPA在同一行内尽力提取。
type EducationExtractor struct{}

// NewEducationExtractor 创建学历提取器
func NewEducationExtractor() *EducationExtractor {
	return &EducationExtractor{}
}

// Extract 提取学历条目。提不出任何条目时返回空切片，不报错。
func (e *EducationExtractor) Extract(text string) []types.EducationEntry {
	var entries []types.EducationEntry

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		degree := matchDegree(trimmed)
		if degree == "" {
			// 没有学位关键词但是独立的院校行，也记一条
			if inst := institutionRe.FindString(trimmed); inst != "" {
				entries = append(entries, types.EducationEntry{
					Institution:  strings.TrimSpace(inst),
					Degree:       "Unknown",
					EndDate:      eduYearRe.FindString(trimmed),
					Achievements: []string{},
				})
			}
			continue
		}

		entry := types.EducationEntry{
			Degree:       degree,
			Institution:  "Unknown",
			Achievements: []string{},
		}
		// 专业名只在院校名之前的部分里找，
		// 避免 "University of Michigan" 的 of 分支被当成专业
		fieldScope := trimmed
		if loc := institutionRe.FindStringIndex(trimmed); loc != nil {
			entry.Institution = strings.TrimSpace(trimmed[loc[0]:loc[1]])
			fieldScope = trimmed[:loc[0]]
		}
		if m := fieldOfStudyRe.FindStringSubmatch(fieldScope); m != nil {
			entry.Field = strings.TrimSpace(m[1])
		}
		if year := eduYearRe.FindString(trimmed); year != "" {
			entry.EndDate = year
		}
		if m := gpaRe.FindStringSubmatch(trimmed); m != nil {
			entry.GPA = m[1]
		}
		entries = append(entries, entry)
	}

	return entries
}

// matchDegree 按层级顺序匹配学位关键词
func matchDegree(line string) string {
	for _, p := range degreePatterns {
		if p.re.MatchString(line) {
			return p.canonical
		}
	}
	return ""
}
