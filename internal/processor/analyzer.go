package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"resume-analyzer-go/internal/agent"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/storage"
	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/internal/utils"
)

// TaskContactExtraction 增强联系信息提取任务标识
const TaskContactExtraction = "contact_extraction"

// ContactExtractionPrompt 增强联系信息提取的系统提示词
const ContactExtractionPrompt = `你是一个简历信息提取助手。从给定文本中提取联系信息，严格按以下JSON格式输出，不要输出任何其他内容：
{"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "website": "", "summary": ""}
提取不到的字段留空字符串。phone只保留数字。`

// enhancedContactConfidence AI补全字段的置信度，低于正则命中的固定值
const enhancedContactConfidence = 0.6

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// 流水线阶段组件
	Segmenter        Segmenter        // 章节分段
	ContactExtractor ContactExtractor // 联系信息提取
	SkillClassifier  SkillClassifier  // 技能分类
	ExperienceParser ExperienceParser // 经历分析
	EducationParser  EducationParser  // 学历提取
	Scorer           Scorer           // 质量打分

	// AI分类器，仅用于增强联系信息提取
	Classifier agent.Classifier

	// 存储层依赖
	Storage *storage.Storage
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	MinTextLength   int            // 最小输入长度（按字符计）
	EnhancedContact bool           // 是否用AI补全缺失的联系信息
	ParserVersion   string         // 结果中记录的解析器版本
	Logger          *log.Logger    // 日志记录器
	TimeLocation    *time.Location // 时区设置
}

// ResumeAnalyzer 简历分析流水线编排器。
// 分段在前，四个独立阶段并发执行，各阶段失败只降级不中断，
// 最后统一打分并合并提取方式标签。
type ResumeAnalyzer struct {
	Components Components
	Settings   Settings
}

// NewResumeAnalyzer 创建分析器，未显式注入的组件使用默认实现
func NewResumeAnalyzer(compOpts []ComponentOpt, setOpts []SettingOpt) *ResumeAnalyzer {
	a := &ResumeAnalyzer{
		Settings: Settings{
			MinTextLength: 50,
			ParserVersion: constants.DefaultParserVersion,
			Logger:        log.New(io.Discard, "", 0),
			TimeLocation:  time.UTC,
		},
	}
	for _, opt := range setOpts {
		opt(&a.Settings)
	}
	for _, opt := range compOpts {
		opt(&a.Components)
	}

	// 默认组件
	if a.Components.Segmenter == nil {
		a.Components.Segmenter = parser.NewSectionSegmenter()
	}
	if a.Components.ContactExtractor == nil {
		a.Components.ContactExtractor = parser.NewFieldExtractor()
	}
	if a.Components.SkillClassifier == nil {
		a.Components.SkillClassifier = parser.NewSkillCategorizer(
			parser.WithCategorizerClassifier(a.Components.Classifier),
		)
	}
	if a.Components.ExperienceParser == nil {
		a.Components.ExperienceParser = parser.NewExperienceAnalyzer()
	}
	if a.Components.EducationParser == nil {
		a.Components.EducationParser = parser.NewEducationExtractor()
	}
	if a.Components.Scorer == nil {
		a.Components.Scorer = parser.NewQualityScorer()
	}
	return a
}

// Analyze 执行完整的分析流水线。
// 只有输入校验失败会返回错误；阶段失败一律就地回退，
// 调用方总能拿到一个完整填充的 ResumeAnalysis。
func (a *ResumeAnalyzer) Analyze(ctx context.Context, text string) (*types.ResumeAnalysis, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, NewInputError(ErrEmptyInput, "输入为空白")
	}
	if n := utf8.RuneCountInString(trimmed); n < a.Settings.MinTextLength {
		return nil, NewInputError(ErrInputTooShort,
			fmt.Sprintf("长度 %d，最小要求 %d", n, a.Settings.MinTextLength))
	}

	sections := a.runSegmenter(text)

	// 四个阶段互不依赖，并发执行。
	// 每个阶段自带recover，单阶段崩溃不影响其他阶段。
	var (
		wg           sync.WaitGroup
		contact      *types.ContactFields
		skills       *types.SkillsProfile
		skillsMethod types.ExtractionMethod
		experience   *types.ExperienceProfile
		education    []types.EducationEntry
	)

	wg.Add(4)
	go a.runStage("contact", &wg, func() {
		contact = a.Components.ContactExtractor.Extract(text)
	})
	go a.runStage("skills", &wg, func() {
		skills, skillsMethod = a.Components.SkillClassifier.Categorize(ctx, sectionTextOr(sections, types.SectionSkills, text))
	})
	go a.runStage("experience", &wg, func() {
		experience = a.Components.ExperienceParser.Analyze(sectionTextOr(sections, types.SectionExperience, text))
	})
	go a.runStage("education", &wg, func() {
		education = a.Components.EducationParser.Extract(sectionTextOr(sections, types.SectionEducation, text))
	})
	wg.Wait()

	// 阶段崩溃时对应结果为nil，这里统一补默认值，
	// 维持顶层字段永远填充的契约
	if contact == nil {
		contact = &types.ContactFields{}
	}
	if skills == nil {
		skills = &types.SkillsProfile{}
		skillsMethod = types.MethodHeuristic
	}
	if experience == nil {
		experience = &types.ExperienceProfile{}
	}
	if education == nil {
		education = []types.EducationEntry{}
	}

	aiOutcomes := []bool{skillsMethod == types.MethodAI}
	if a.Settings.EnhancedContact && a.Components.Classifier != nil {
		aiOutcomes = append(aiOutcomes, a.enhanceContact(ctx, text, contact))
	}

	quality := a.Components.Scorer.Score(text, contact, sections)

	return &types.ResumeAnalysis{
		Text:             text,
		Contact:          *contact,
		Sections:         *sections,
		Skills:           *skills,
		Experience:       *experience,
		Education:        education,
		Quality:          quality,
		ParseSource:      "text",
		ExtractionMethod: mergeMethods(aiOutcomes),
		ParserVersion:    a.Settings.ParserVersion,
		ProcessedAt:      time.Now().In(a.Settings.TimeLocation),
	}, nil
}

// runSegmenter 分段阶段单独守护，崩溃时退化为空章节集
func (a *ResumeAnalyzer) runSegmenter(text string) *types.SectionSet {
	var sections *types.SectionSet
	func() {
		defer func() {
			if r := recover(); r != nil {
				a.Settings.Logger.Printf("[ResumeAnalyzer] segmenter panic: %v", r)
			}
		}()
		sections = a.Components.Segmenter.Segment(text)
	}()
	if sections == nil {
		sections = &types.SectionSet{}
	}
	return sections
}

// runStage 运行一个并发阶段，吞掉panic并记录日志
func (a *ResumeAnalyzer) runStage(name string, wg *sync.WaitGroup, fn func()) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			a.Settings.Logger.Printf("[ResumeAnalyzer] stage %s panic: %v", name, r)
		}
	}()
	fn()
}

// enhanceContact 用AI补全正则没有命中的联系信息字段。
// 只填缺失字段，不覆盖已有的高置信度结果。返回AI路径是否成功。
func (a *ResumeAnalyzer) enhanceContact(ctx context.Context, text string, contact *types.ContactFields) bool {
	// 只取开头部分送模型，按rune边界截断
	head := utils.TruncateUTF8(text, 1500)
	raw, err := a.Components.Classifier.Classify(ctx, TaskContactExtraction, map[string]interface{}{
		"text": head,
	})
	if err != nil {
		a.Settings.Logger.Printf("[ResumeAnalyzer] 增强联系信息提取失败: %v", err)
		return false
	}

	jsonStr := parser.ExtractJSON(raw)
	if jsonStr == "" {
		a.Settings.Logger.Printf("[ResumeAnalyzer] 增强联系信息响应中未找到JSON")
		return false
	}

	var resp struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
		LinkedIn string `json:"linkedin"`
		GitHub   string `json:"github"`
		Website  string `json:"website"`
		Summary  string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		a.Settings.Logger.Printf("[ResumeAnalyzer] 增强联系信息JSON解析失败: %v", err)
		return false
	}

	fillMissing(&contact.Name, resp.Name)
	fillMissing(&contact.Email, resp.Email)
	fillMissing(&contact.Phone, resp.Phone)
	fillMissing(&contact.Location, resp.Location)
	fillMissing(&contact.LinkedIn, resp.LinkedIn)
	fillMissing(&contact.GitHub, resp.GitHub)
	fillMissing(&contact.Website, resp.Website)
	fillMissing(&contact.Summary, resp.Summary)
	return true
}

// fillMissing 仅在目标字段缺失且AI给出非空值时填充
func fillMissing(field **types.ContactField, value string) {
	value = strings.TrimSpace(value)
	if *field != nil || value == "" {
		return
	}
	*field = &types.ContactField{Value: value, Confidence: enhancedContactConfidence}
}

// sectionTextOr 取指定章节的文本，章节缺失或为空时退回全文
func sectionTextOr(sections *types.SectionSet, kind types.SectionKind, fallback string) string {
	if text, ok := sections.Get(kind); ok && strings.TrimSpace(text) != "" {
		return text
	}
	return fallback
}

// mergeMethods 合并各AI路径的结果为单一提取方式标签。
// 没有任何AI路径成功时为heuristic，全部成功为ai，部分成功为mixed。
func mergeMethods(aiOutcomes []bool) types.ExtractionMethod {
	succeeded := 0
	for _, ok := range aiOutcomes {
		if ok {
			succeeded++
		}
	}
	switch {
	case succeeded == 0:
		return types.MethodHeuristic
	case succeeded == len(aiOutcomes):
		return types.MethodAI
	default:
		return types.MethodMixed
	}
}
