package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/internal/utils"
)

// headScanLimit 联系信息通常集中在简历开头，只扫描前 500 个字符
const headScanLimit = 500

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`(\+?\d[\d\t \-().]{5,18}\d)`)
	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[a-zA-Z0-9\-_%]+`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[a-zA-Z0-9\-_]+`)
	websiteRe  = regexp.MustCompile(`(?i)https?://[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}(?:/\S*)?`)
	// 姓名启发式：开头若干行中 2-4 个首字母大写的单词
	nameRe = regexp.MustCompile(`^([A-Z][a-zA-Z'\-]+(?:\s+[A-Z][a-zA-Z'\-]+){1,3})$`)
	// 年份区间不是电话号码，匹配电话时要排除
	yearSpanRe = regexp.MustCompile(`^\s*(19|20)\d{2}\s*[-–]\s*(19|20)\d{2}\s*$`)
)

// 各字段的固定置信度。启发式提取不产生动态置信度，
// 按模式本身的可靠程度赋固定值。
const (
	confEmail    = 0.95
	confPhone    = 0.90
	confName     = 0.70
	confLinkedin = 0.90
	confGithub   = 0.90
	confWebsite  = 0.80
)

// FieldExtractor 从原始文本中提取联系信息字段。
// 纯启发式实现，缺失的字段保持 nil，不视为错误。
type FieldExtractor struct{}

// NewFieldExtractor 创建联系信息提取器
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// Extract 在文本开头区域内匹配联系信息。
// 每个字段相互独立，任一字段缺失不影响其他字段。
func (e *FieldExtractor) Extract(text string) *types.ContactFields {
	// 按rune边界截断，避免把多字节字符切成无效字节
	head := utils.TruncateUTF8(text, headScanLimit)

	fields := &types.ContactFields{}

	if m := emailRe.FindString(head); m != "" {
		fields.Email = &types.ContactField{Value: m, Confidence: confEmail}
	}
	if m := linkedinRe.FindString(head); m != "" {
		fields.LinkedIn = &types.ContactField{Value: m, Confidence: confLinkedin}
	}
	if m := githubRe.FindString(head); m != "" {
		fields.GitHub = &types.ContactField{Value: m, Confidence: confGithub}
	}
	if phone := e.extractPhone(head); phone != "" {
		fields.Phone = &types.ContactField{Value: phone, Confidence: confPhone}
	}
	if name := e.extractName(head); name != "" {
		fields.Name = &types.ContactField{Value: name, Confidence: confName}
	}
	if site := e.extractWebsite(head, fields); site != "" {
		fields.Website = &types.ContactField{Value: site, Confidence: confWebsite}
	}

	return fields
}

// extractPhone 匹配电话号码并规范化为纯数字串。
// 候选号码不跨行，相邻行的数字不会被拼到一起。
// 去掉分隔符后长度必须落在 7 到 15 位之间，否则视为未命中。
func (e *FieldExtractor) extractPhone(head string) string {
	for _, m := range phoneRe.FindAllString(head, -1) {
		if yearSpanRe.MatchString(m) {
			continue
		}
		digits := stripNonDigits(m)
		if len(digits) >= 7 && len(digits) <= 15 {
			return digits
		}
	}
	return ""
}

// extractName 在开头 5 行内寻找形似姓名的行。
// 含 @ 或数字的行直接跳过，避免把邮箱行误判为姓名。
func (e *FieldExtractor) extractName(head string) string {
	lines := strings.Split(head, "\n")
	limit := 5
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.ContainsAny(trimmed, "@0123456789") {
			continue
		}
		if m := nameRe.FindString(trimmed); m != "" {
			return m
		}
	}
	return ""
}

// extractWebsite 匹配个人网站链接，排除已识别的 linkedin/github 链接
func (e *FieldExtractor) extractWebsite(head string, fields *types.ContactFields) string {
	for _, m := range websiteRe.FindAllString(head, -1) {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		return m
	}
	return ""
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
