package types

import "time"

// SectionKind 表示简历章节类型
type SectionKind string

const (
	// SectionSummary 个人简介/概要章节
	SectionSummary SectionKind = "summary"
	// SectionExperience 工作经历章节
	SectionExperience SectionKind = "experience"
	// SectionEducation 教育经历章节
	SectionEducation SectionKind = "education"
	// SectionSkills 技能章节
	SectionSkills SectionKind = "skills"
	// SectionProjects 项目经历章节
	SectionProjects SectionKind = "projects"
	// SectionAchievements 获奖/成就章节
	SectionAchievements SectionKind = "achievements"
	// SectionCertifications 证书章节
	SectionCertifications SectionKind = "certifications"
)

// Section 一个已识别的章节：类型 + 原始标题行 + 正文
type Section struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
}

// SectionSet 按识别顺序保存章节，每种类型最多出现一次。
// 分段完成后不再修改。
type SectionSet struct {
	Sections []Section `json:"sections"`
}

// Get 返回指定类型章节的正文
func (s *SectionSet) Get(kind SectionKind) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, sec := range s.Sections {
		if sec.Kind == kind {
			return sec.Text, true
		}
	}
	return "", false
}

// Has 判断指定类型章节是否存在
func (s *SectionSet) Has(kind SectionKind) bool {
	_, ok := s.Get(kind)
	return ok
}

// Len 返回识别到的章节数量
func (s *SectionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Sections)
}

// IsEmpty 没有识别到任何章节时为 true，下游组件此时回退到全文处理
func (s *SectionSet) IsEmpty() bool {
	return s.Len() == 0
}

// ContactField 单个联系信息字段及其置信度（0-1）
type ContactField struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ContactFields 提取出的联系信息。缺失的字段为 nil，而不是零置信度。
type ContactFields struct {
	Name     *ContactField `json:"name,omitempty"`
	Email    *ContactField `json:"email,omitempty"`
	Phone    *ContactField `json:"phone,omitempty"`
	Location *ContactField `json:"location,omitempty"`
	LinkedIn *ContactField `json:"linkedin,omitempty"`
	GitHub   *ContactField `json:"github,omitempty"`
	Website  *ContactField `json:"website,omitempty"`
	Summary  *ContactField `json:"summary,omitempty"`
}

// HasAny 判断是否至少提取到了一个字段
func (c *ContactFields) HasAny() bool {
	return c.Name != nil || c.Email != nil || c.Phone != nil || c.Location != nil ||
		c.LinkedIn != nil || c.GitHub != nil || c.Website != nil || c.Summary != nil
}

// SkillCategory 技能分类，固定的封闭集合
type SkillCategory string

const (
	CategoryProgramming SkillCategory = "programming"
	CategoryDatabase    SkillCategory = "database"
	CategoryCloud       SkillCategory = "cloud"
	CategoryDevOps      SkillCategory = "devops"
	CategoryFrontend    SkillCategory = "frontend"
	CategoryBackend     SkillCategory = "backend"
	CategoryMobile      SkillCategory = "mobile"
	CategoryOther       SkillCategory = "other"
)

// ValidSkillCategory 判断分类是否属于封闭集合
func ValidSkillCategory(c SkillCategory) bool {
	switch c {
	case CategoryProgramming, CategoryDatabase, CategoryCloud, CategoryDevOps,
		CategoryFrontend, CategoryBackend, CategoryMobile, CategoryOther:
		return true
	}
	return false
}

// TechnicalSkill 技术技能及其分类
type TechnicalSkill struct {
	Name              string        `json:"name"`
	Category          SkillCategory `json:"category"`
	Proficiency       string        `json:"proficiency,omitempty"`
	YearsOfExperience float64       `json:"years_of_experience,omitempty"`
}

// SkillsProfile 技能画像。每个桶内按名称（不区分大小写）去重。
type SkillsProfile struct {
	Technical      []TechnicalSkill `json:"technical"`
	Soft           []string         `json:"soft"`
	Frameworks     []string         `json:"frameworks"`
	Languages      []string         `json:"languages"`
	Tools          []string         `json:"tools"`
	Certifications []string         `json:"certifications"`
}

// Role 单条职位记录
type Role struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// ExperienceProfile 工作经历分析结果。
// TotalYears 为派生值：逐个日期区间求和，重叠任职会被重复计算，
// 这是有意保留的近似行为。
type ExperienceProfile struct {
	TotalYears float64  `json:"total_years"`
	Roles      []Role   `json:"roles"`
	Companies  []string `json:"companies"`
	Industries []string `json:"industries"`
}

// EducationEntry 一条教育经历。无法分离出院校时 Institution 为 "Unknown"。
type EducationEntry struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
}

// QualityMetrics 简历质量评分。
// 不变式：Score == Completeness + Clarity + Relevance + Formatting，
// 各子项独立限制在 [0,25]，总分截断到 [0,100]。
type QualityMetrics struct {
	Score        int `json:"score"`
	Completeness int `json:"completeness"`
	Clarity      int `json:"clarity"`
	Relevance    int `json:"relevance"`
	Formatting   int `json:"formatting"`
}

// ExtractionMethod 记录产出该分析结果的策略
type ExtractionMethod string

const (
	// MethodAI 所有可用AI路径的阶段都走了AI
	MethodAI ExtractionMethod = "ai"
	// MethodHeuristic 全部阶段走确定性启发式
	MethodHeuristic ExtractionMethod = "heuristic"
	// MethodMixed 部分阶段走了AI
	MethodMixed ExtractionMethod = "mixed"
)

// SourceFormat 上游转换器产出文本的原始格式
type SourceFormat string

const (
	FormatPDF  SourceFormat = "pdf"
	FormatDocx SourceFormat = "docx"
)

// FileMetadata 上游文档转换器附带的二进制元数据
type FileMetadata struct {
	PageCount int    `json:"page_count,omitempty"`
	FileSize  int64  `json:"file_size"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
}

// RawDocument 上游转换器交付的输入。产出后不可变。
type RawDocument struct {
	Text         string       `json:"text"`
	SourceFormat SourceFormat `json:"source_format"`
	Metadata     FileMetadata `json:"metadata"`
}

// ResumeAnalysis 一次流水线运行的完整产物（根聚合）。
// 作为不可变值对象交给调用方，顶层字段永远填充（必要时为回退默认值）。
type ResumeAnalysis struct {
	Text             string            `json:"text"`
	Contact          ContactFields     `json:"contact"`
	Sections         SectionSet        `json:"sections"`
	Skills           SkillsProfile     `json:"skills"`
	Experience       ExperienceProfile `json:"experience"`
	Education        []EducationEntry  `json:"education"`
	Quality          QualityMetrics    `json:"quality"`
	ParseSource      string            `json:"parse_source"`
	ExtractionMethod ExtractionMethod  `json:"extraction_method"`
	ParserVersion    string            `json:"parser_version"`
	ProcessedAt      time.Time         `json:"processed_at"`
}
