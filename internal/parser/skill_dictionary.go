package parser

import (
	"strings"

	"resume-analyzer-go/internal/types"
)

// skillBucket 技能在画像中的归属桶
type skillBucket int

const (
	bucketLanguage skillBucket = iota
	bucketFramework
	bucketTool
	bucketSoft
	bucketCertification
)

// dictEntry 字典条目：规范名 + 分类 + 画像桶
type dictEntry struct {
	canonical string
	category  types.SkillCategory
	bucket    skillBucket
}

// skillDictionary 启发式技能字典。键为小写词条，匹配时做词边界判断。
// AI 分类不可用时这是唯一的分类来源，所以宁可全不可偏。
var skillDictionary = map[string]dictEntry{
	// 编程语言
	"go":          {"Go", types.CategoryProgramming, bucketLanguage},
	"golang":      {"Go", types.CategoryProgramming, bucketLanguage},
	"python":      {"Python", types.CategoryProgramming, bucketLanguage},
	"java":        {"Java", types.CategoryProgramming, bucketLanguage},
	"javascript":  {"JavaScript", types.CategoryProgramming, bucketLanguage},
	"typescript":  {"TypeScript", types.CategoryProgramming, bucketLanguage},
	"c++":         {"C++", types.CategoryProgramming, bucketLanguage},
	"c#":          {"C#", types.CategoryProgramming, bucketLanguage},
	"ruby":        {"Ruby", types.CategoryProgramming, bucketLanguage},
	"php":         {"PHP", types.CategoryProgramming, bucketLanguage},
	"rust":        {"Rust", types.CategoryProgramming, bucketLanguage},
	"kotlin":      {"Kotlin", types.CategoryMobile, bucketLanguage},
	"swift":       {"Swift", types.CategoryMobile, bucketLanguage},
	"scala":       {"Scala", types.CategoryProgramming, bucketLanguage},
	"perl":        {"Perl", types.CategoryProgramming, bucketLanguage},
	"r":           {"R", types.CategoryProgramming, bucketLanguage},
	"objective-c": {"Objective-C", types.CategoryMobile, bucketLanguage},
	"sql":         {"SQL", types.CategoryDatabase, bucketLanguage},
	"bash":        {"Bash", types.CategoryDevOps, bucketLanguage},
	"shell":       {"Shell", types.CategoryDevOps, bucketLanguage},

	// 前端框架与技术
	"react":     {"React", types.CategoryFrontend, bucketFramework},
	"react.js":  {"React", types.CategoryFrontend, bucketFramework},
	"vue":       {"Vue", types.CategoryFrontend, bucketFramework},
	"vue.js":    {"Vue", types.CategoryFrontend, bucketFramework},
	"angular":   {"Angular", types.CategoryFrontend, bucketFramework},
	"svelte":    {"Svelte", types.CategoryFrontend, bucketFramework},
	"next.js":   {"Next.js", types.CategoryFrontend, bucketFramework},
	"html":      {"HTML", types.CategoryFrontend, bucketLanguage},
	"css":       {"CSS", types.CategoryFrontend, bucketLanguage},
	"sass":      {"Sass", types.CategoryFrontend, bucketTool},
	"webpack":   {"Webpack", types.CategoryFrontend, bucketTool},
	"bootstrap": {"Bootstrap", types.CategoryFrontend, bucketFramework},
	"tailwind":  {"Tailwind", types.CategoryFrontend, bucketFramework},

	// 后端框架
	"node.js": {"Node.js", types.CategoryBackend, bucketFramework},
	"nodejs":  {"Node.js", types.CategoryBackend, bucketFramework},
	"express": {"Express", types.CategoryBackend, bucketFramework},
	"django":  {"Django", types.CategoryBackend, bucketFramework},
	"flask":   {"Flask", types.CategoryBackend, bucketFramework},
	"spring":  {"Spring", types.CategoryBackend, bucketFramework},
	"gin":     {"Gin", types.CategoryBackend, bucketFramework},
	"rails":   {"Rails", types.CategoryBackend, bucketFramework},
	"laravel": {"Laravel", types.CategoryBackend, bucketFramework},
	"grpc":    {"gRPC", types.CategoryBackend, bucketFramework},
	"graphql": {"GraphQL", types.CategoryBackend, bucketFramework},
	"rest":    {"REST", types.CategoryBackend, bucketFramework},

	// 数据库与存储
	"mysql":         {"MySQL", types.CategoryDatabase, bucketTool},
	"postgresql":    {"PostgreSQL", types.CategoryDatabase, bucketTool},
	"postgres":      {"PostgreSQL", types.CategoryDatabase, bucketTool},
	"mongodb":       {"MongoDB", types.CategoryDatabase, bucketTool},
	"redis":         {"Redis", types.CategoryDatabase, bucketTool},
	"elasticsearch": {"Elasticsearch", types.CategoryDatabase, bucketTool},
	"sqlite":        {"SQLite", types.CategoryDatabase, bucketTool},
	"oracle":        {"Oracle", types.CategoryDatabase, bucketTool},
	"cassandra":     {"Cassandra", types.CategoryDatabase, bucketTool},
	"kafka":         {"Kafka", types.CategoryBackend, bucketTool},
	"rabbitmq":      {"RabbitMQ", types.CategoryBackend, bucketTool},

	// 云与基础设施
	"aws":        {"AWS", types.CategoryCloud, bucketTool},
	"azure":      {"Azure", types.CategoryCloud, bucketTool},
	"gcp":        {"GCP", types.CategoryCloud, bucketTool},
	"docker":     {"Docker", types.CategoryDevOps, bucketTool},
	"kubernetes": {"Kubernetes", types.CategoryDevOps, bucketTool},
	"k8s":        {"Kubernetes", types.CategoryDevOps, bucketTool},
	"terraform":  {"Terraform", types.CategoryDevOps, bucketTool},
	"ansible":    {"Ansible", types.CategoryDevOps, bucketTool},
	"jenkins":    {"Jenkins", types.CategoryDevOps, bucketTool},
	"ci/cd":      {"CI/CD", types.CategoryDevOps, bucketTool},
	"git":        {"Git", types.CategoryDevOps, bucketTool},
	"linux":      {"Linux", types.CategoryDevOps, bucketTool},
	"nginx":      {"Nginx", types.CategoryDevOps, bucketTool},
	"prometheus": {"Prometheus", types.CategoryDevOps, bucketTool},
	"grafana":    {"Grafana", types.CategoryDevOps, bucketTool},

	// 移动端
	"android":      {"Android", types.CategoryMobile, bucketFramework},
	"ios":          {"iOS", types.CategoryMobile, bucketFramework},
	"flutter":      {"Flutter", types.CategoryMobile, bucketFramework},
	"react native": {"React Native", types.CategoryMobile, bucketFramework},

	// 软技能
	"leadership":         {"Leadership", types.CategoryOther, bucketSoft},
	"communication":      {"Communication", types.CategoryOther, bucketSoft},
	"teamwork":           {"Teamwork", types.CategoryOther, bucketSoft},
	"problem solving":    {"Problem Solving", types.CategoryOther, bucketSoft},
	"mentoring":          {"Mentoring", types.CategoryOther, bucketSoft},
	"project management": {"Project Management", types.CategoryOther, bucketSoft},
	"agile":              {"Agile", types.CategoryOther, bucketSoft},
	"scrum":              {"Scrum", types.CategoryOther, bucketSoft},
	"collaboration":      {"Collaboration", types.CategoryOther, bucketSoft},
	"time management":    {"Time Management", types.CategoryOther, bucketSoft},

	// 认证
	"aws certified":          {"AWS Certified", types.CategoryCloud, bucketCertification},
	"pmp":                    {"PMP", types.CategoryOther, bucketCertification},
	"cka":                    {"CKA", types.CategoryDevOps, bucketCertification},
	"ckad":                   {"CKAD", types.CategoryDevOps, bucketCertification},
	"cissp":                  {"CISSP", types.CategoryOther, bucketCertification},
	"ccna":                   {"CCNA", types.CategoryOther, bucketCertification},
	"azure certified":        {"Azure Certified", types.CategoryCloud, bucketCertification},
	"google cloud certified": {"Google Cloud Certified", types.CategoryCloud, bucketCertification},
	"certified scrum master": {"Certified Scrum Master", types.CategoryOther, bucketCertification},
	"oracle certified":       {"Oracle Certified", types.CategoryDatabase, bucketCertification},
}

// containsTerm 在文本中查找词条，要求两侧是词边界。
// 词条本身可以含 +、#、. 等符号（c++、c#、node.js），
// 所以不能用 \b 正则，改为手工判断相邻字符。
// text 必须已转为小写。
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start < len(text); {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(term)) {
			return true
		}
		start = idx + 1
	}
	return false
}

// boundaryBefore 词条左边界：文本开头或非字母数字字符
func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordChar(text[idx-1])
}

// boundaryAfter 词条右边界：文本结尾或非字母数字字符。
// 词条以符号结尾时（c++）紧跟字母数字也算边界。
func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	if !isWordChar(text[end-1]) {
		return true
	}
	return !isWordChar(text[end])
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
