package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"resume-analyzer-go/internal/types"
)

var (
	// 日期区间：起始年 - 结束年或 present/current
	yearRangeRe = regexp.MustCompile(`(?i)\b((19|20)\d{2})\s*[-–]\s*(((19|20)\d{2})|present|current)\b`)
	// 行尾的年份残留，公司名清洗时去掉
	trailingYearsRe = regexp.MustCompile(`[\s,|]*((19|20)\d{2}\s*[-–]?\s*((19|20)\d{2}|present|current)?[\s,|]*)+$`)
)

// roleKeywords 职位头衔关键词，行内命中即认为该行描述一个职位
var roleKeywords = []string{
	"engineer", "developer", "programmer", "architect", "manager",
	"analyst", "designer", "consultant", "director", "lead",
	"administrator", "scientist", "intern", "specialist", "officer",
}

// companySuffixes 公司名后缀关键词
var companySuffixes = []string{
	"corp", "inc", "ltd", "llc", "company", "co.",
	"technologies", "systems", "solutions", "labs", "group",
}

// industryKeywords 行业关键词到行业标签的映射
var industryKeywords = map[string]string{
	"fintech":       "Finance",
	"finance":       "Finance",
	"banking":       "Finance",
	"insurance":     "Finance",
	"healthcare":    "Healthcare",
	"medical":       "Healthcare",
	"e-commerce":    "E-commerce",
	"ecommerce":     "E-commerce",
	"retail":        "E-commerce",
	"education":     "Education",
	"gaming":        "Gaming",
	"telecom":       "Telecommunications",
	"logistics":     "Logistics",
	"manufacturing": "Manufacturing",
	"advertising":   "Advertising",
	"media":         "Media",
}

// ExperienceAnalyzer 从经历章节中分析工作年限、职位、公司和行业。
// 纯启发式实现，输入噪声只会降低产出，不会报错。
type ExperienceAnalyzer struct {
	// now 便于测试固定"当前年份"
	now func() time.Time
}

// NewExperienceAnalyzer 创建经历分析器
func NewExperienceAnalyzer() *ExperienceAnalyzer {
	return &ExperienceAnalyzer{now: time.Now}
}

// Analyze 分析经历文本。文本通常是经历章节，找不到章节时调用方会传全文。
func (a *ExperienceAnalyzer) Analyze(text string) *types.ExperienceProfile {
	profile := &types.ExperienceProfile{}
	profile.TotalYears = a.totalYears(text)

	lines := strings.Split(text, "\n")
	seenCompany := make(map[string]bool)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if role, ok := a.parseRole(trimmed); ok {
			profile.Roles = append(profile.Roles, role)
			if role.Company != "Unknown" && !seenCompany[role.Company] {
				seenCompany[role.Company] = true
				profile.Companies = append(profile.Companies, role.Company)
			}
			continue
		}
		// 非职位行也可能只写了公司名
		if company := a.extractCompany(trimmed); company != "" && !seenCompany[company] {
			seenCompany[company] = true
			profile.Companies = append(profile.Companies, company)
		}
	}

	profile.Industries = a.detectIndustries(text)
	return profile
}

// totalYears 逐个日期区间求和。重叠区间会被重复计算，
// 结果是上界而不是精确值。
func (a *ExperienceAnalyzer) totalYears(text string) float64 {
	currentYear := a.now().Year()

	var total float64
	for _, m := range yearRangeRe.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		var end int
		endToken := strings.ToLower(m[3])
		if endToken == "present" || endToken == "current" {
			end = currentYear
		} else {
			end, err = strconv.Atoi(endToken)
			if err != nil {
				continue
			}
		}
		if span := end - start; span > 0 {
			total += float64(span)
		}
	}
	return total
}

// parseRole 判断一行是否描述职位，并尽量从同一行中
// 分离头衔、公司和任职区间。
func (a *ExperienceAnalyzer) parseRole(line string) (types.Role, bool) {
	lower := strings.ToLower(line)
	matched := false
	for _, kw := range roleKeywords {
		if containsTerm(lower, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return types.Role{}, false
	}

	role := types.Role{Title: line, Company: "Unknown", Duration: "Unknown"}

	if m := yearRangeRe.FindString(line); m != "" {
		role.Duration = m
	}

	if company := a.extractCompany(line); company != "" {
		role.Company = company
		// 头衔取 at 之前的部分；"公司 - 职位" 形式取破折号之后
		if idx := indexAt(line); idx >= 0 {
			role.Title = strings.TrimSpace(line[:idx])
		} else if _, after, ok := splitAtDash(line); ok {
			role.Title = strings.TrimSpace(after)
		}
	}
	role.Title = strings.TrimSpace(trailingYearsRe.ReplaceAllString(role.Title, ""))
	if role.Title == "" {
		role.Title = "Unknown"
	}
	return role, true
}

// extractCompany 从一行中分离公司名。
// 先裁掉日期区间及其后的内容；"公司 - 职位/描述" 形式的行
// 取破折号之前的部分；再取 " at " 之后的部分，
// 最后校验结果确实像公司名（有后缀关键词或以大写开头的多词短语）。
func (a *ExperienceAnalyzer) extractCompany(line string) string {
	candidate := line
	if loc := yearRangeRe.FindStringIndex(candidate); loc != nil {
		candidate = candidate[:loc[0]]
	}
	if before, _, ok := splitAtDash(candidate); ok {
		candidate = before
	}
	if idx := indexAt(candidate); idx >= 0 {
		candidate = candidate[idx+len(" at "):]
	} else if !hasCompanySuffix(candidate) {
		return ""
	}
	candidate = strings.Trim(candidate, " \t,|-–")
	candidate = strings.TrimSpace(trailingYearsRe.ReplaceAllString(candidate, ""))

	if candidate == "" || !startsUpper(candidate) {
		return ""
	}
	return candidate
}

// detectIndustries 在文本中匹配行业关键词，输出排序去重后的标签
func (a *ExperienceAnalyzer) detectIndustries(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var industries []string
	for kw, label := range industryKeywords {
		if !containsTerm(lower, kw) {
			continue
		}
		if !seen[label] {
			seen[label] = true
			industries = append(industries, label)
		}
	}
	sort.Strings(industries)
	return industries
}

// indexAt 不区分大小写查找 " at " 分隔词
func indexAt(s string) int {
	return strings.Index(strings.ToLower(s), " at ")
}

// splitAtDash 在第一个两侧带空格的连字符或短破折号处切开。
// 不带空格的连字符（如年份区间、复合词）不算分隔符。
func splitAtDash(s string) (before, after string, ok bool) {
	cut, sepLen := -1, 0
	for _, sep := range []string{" - ", " – "} {
		if idx := strings.Index(s, sep); idx >= 0 && (cut < 0 || idx < cut) {
			cut, sepLen = idx, len(sep)
		}
	}
	if cut < 0 {
		return s, "", false
	}
	return s[:cut], s[cut+sepLen:], true
}

func hasCompanySuffix(line string) bool {
	lower := strings.ToLower(line)
	for _, suffix := range companySuffixes {
		if containsTerm(lower, suffix) {
			return true
		}
	}
	return false
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'A' && c <= 'Z'
}
