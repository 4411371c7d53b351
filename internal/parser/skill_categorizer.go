package parser

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sort"
	"strings"

	"resume-analyzer-go/internal/agent"
	"resume-analyzer-go/internal/types"
)

// TaskSkillCategorization 技能分类任务标识
const TaskSkillCategorization = "skill_categorization"

// SkillCategorizationPrompt 技能分类的系统提示词。
// 要求模型只输出JSON，分类限定在封闭集合内。
const SkillCategorizationPrompt = `你是一个简历技能分析助手。从给定的简历文本中提取技能，并严格按以下JSON格式输出，不要输出任何其他内容：
{
  "technical": [{"name": "技能名", "category": "programming|database|cloud|devops|frontend|backend|mobile|other"}],
  "soft": ["软技能"],
  "frameworks": ["框架"],
  "languages": ["编程语言"],
  "tools": ["工具"],
  "certifications": ["认证"]
}
category 字段只能取上面列出的枚举值。找不到技能时对应数组为空。`

// aiSkillsResponse 模型返回的JSON结构
type aiSkillsResponse struct {
	Technical []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"technical"`
	Soft           []string `json:"soft"`
	Frameworks     []string `json:"frameworks"`
	Languages      []string `json:"languages"`
	Tools          []string `json:"tools"`
	Certifications []string `json:"certifications"`
}

// SkillCategorizer 技能提取与分类。优先走AI分类，
// AI不可用或输出不可解析时回退到内置字典匹配。没有失败模式。
type SkillCategorizer struct {
	classifier agent.Classifier
	logger     *log.Logger
}

// CategorizerOption 技能分类器配置选项
type CategorizerOption func(*SkillCategorizer)

// WithCategorizerClassifier 注入AI分类器，nil表示只用字典
func WithCategorizerClassifier(c agent.Classifier) CategorizerOption {
	return func(s *SkillCategorizer) {
		s.classifier = c
	}
}

// WithCategorizerLogger 设置日志记录器
func WithCategorizerLogger(l *log.Logger) CategorizerOption {
	return func(s *SkillCategorizer) {
		s.logger = l
	}
}

// NewSkillCategorizer 创建技能分类器
func NewSkillCategorizer(options ...CategorizerOption) *SkillCategorizer {
	s := &SkillCategorizer{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Categorize 对文本做技能提取。返回技能画像和实际使用的提取方式。
func (s *SkillCategorizer) Categorize(ctx context.Context, text string) (*types.SkillsProfile, types.ExtractionMethod) {
	if s.classifier != nil {
		if profile, ok := s.categorizeAI(ctx, text); ok {
			return profile, types.MethodAI
		}
		s.logger.Printf("[SkillCategorizer] AI分类失败，回退到字典匹配")
	}
	return s.categorizeHeuristic(text), types.MethodHeuristic
}

// categorizeAI 调用AI分类并解析结果。任何一步失败都返回 ok=false，
// 不向上传播错误，由调用方回退。
func (s *SkillCategorizer) categorizeAI(ctx context.Context, text string) (*types.SkillsProfile, bool) {
	raw, err := s.classifier.Classify(ctx, TaskSkillCategorization, map[string]interface{}{
		"text": text,
	})
	if err != nil {
		s.logger.Printf("[SkillCategorizer] classify error: %v", err)
		return nil, false
	}

	jsonStr := ExtractJSON(raw)
	if jsonStr == "" {
		s.logger.Printf("[SkillCategorizer] 响应中未找到JSON: %.80s", raw)
		return nil, false
	}

	var resp aiSkillsResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		s.logger.Printf("[SkillCategorizer] JSON解析失败: %v", err)
		return nil, false
	}

	profile := &types.SkillsProfile{}
	seen := make(map[string]bool)
	for _, t := range resp.Technical {
		name := strings.TrimSpace(t.Name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		category := types.SkillCategory(strings.ToLower(strings.TrimSpace(t.Category)))
		if !types.ValidSkillCategory(category) {
			// 模型输出了集合之外的分类，降级为other而不是丢弃
			category = types.CategoryOther
		}
		profile.Technical = append(profile.Technical, types.TechnicalSkill{
			Name:     name,
			Category: category,
		})
	}
	profile.Soft = dedupeStrings(resp.Soft)
	profile.Frameworks = dedupeStrings(resp.Frameworks)
	profile.Languages = dedupeStrings(resp.Languages)
	profile.Tools = dedupeStrings(resp.Tools)
	profile.Certifications = dedupeStrings(resp.Certifications)

	return profile, true
}

// categorizeHeuristic 字典匹配。遍历字典找出现在文本中的词条，
// 输出按名称排序，保证同一输入的结果完全一致。
func (s *SkillCategorizer) categorizeHeuristic(text string) *types.SkillsProfile {
	lower := strings.ToLower(text)

	profile := &types.SkillsProfile{}
	seenTech := make(map[string]bool)
	seenBucket := map[skillBucket]map[string]bool{
		bucketLanguage:      {},
		bucketFramework:     {},
		bucketTool:          {},
		bucketSoft:          {},
		bucketCertification: {},
	}

	for term, entry := range skillDictionary {
		if !containsTerm(lower, term) {
			continue
		}

		key := strings.ToLower(entry.canonical)
		switch entry.bucket {
		case bucketLanguage, bucketFramework, bucketTool:
			// 技术类词条同时进入 Technical 和对应桶
			if !seenTech[key] {
				seenTech[key] = true
				profile.Technical = append(profile.Technical, types.TechnicalSkill{
					Name:     entry.canonical,
					Category: entry.category,
				})
			}
		}
		if !seenBucket[entry.bucket][key] {
			seenBucket[entry.bucket][key] = true
			switch entry.bucket {
			case bucketLanguage:
				profile.Languages = append(profile.Languages, entry.canonical)
			case bucketFramework:
				profile.Frameworks = append(profile.Frameworks, entry.canonical)
			case bucketTool:
				profile.Tools = append(profile.Tools, entry.canonical)
			case bucketSoft:
				profile.Soft = append(profile.Soft, entry.canonical)
			case bucketCertification:
				profile.Certifications = append(profile.Certifications, entry.canonical)
			}
		}
	}

	sort.Slice(profile.Technical, func(i, j int) bool {
		return profile.Technical[i].Name < profile.Technical[j].Name
	})
	sort.Strings(profile.Languages)
	sort.Strings(profile.Frameworks)
	sort.Strings(profile.Tools)
	sort.Strings(profile.Soft)
	sort.Strings(profile.Certifications)

	return profile
}

// dedupeStrings 不区分大小写去重，保留首次出现的写法和顺序
func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
