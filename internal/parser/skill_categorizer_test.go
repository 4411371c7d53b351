package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/agent"
	"resume-analyzer-go/internal/types"
)

const skillsSectionText = `Skills
Proficient in Go, Python and JavaScript.
Frontend work with React. Backend services on Node.js.
Databases: MySQL, Redis. Infra: Docker, Kubernetes, AWS.
Strong leadership and communication.`

func TestSkillCategorizer_HeuristicExtraction(t *testing.T) {
	cat := NewSkillCategorizer()
	profile, method := cat.Categorize(context.Background(), skillsSectionText)

	assert.Equal(t, types.MethodHeuristic, method)
	require.NotNil(t, profile)

	assert.Contains(t, profile.Languages, "Go")
	assert.Contains(t, profile.Languages, "Python")
	assert.Contains(t, profile.Languages, "JavaScript")
	assert.Contains(t, profile.Frameworks, "React")
	assert.Contains(t, profile.Frameworks, "Node.js")
	assert.Contains(t, profile.Tools, "MySQL")
	assert.Contains(t, profile.Tools, "Redis")
	assert.Contains(t, profile.Tools, "Docker")
	assert.Contains(t, profile.Tools, "Kubernetes")
	assert.Contains(t, profile.Tools, "AWS")
	assert.Contains(t, profile.Soft, "Leadership")
	assert.Contains(t, profile.Soft, "Communication")

	// Technical 汇总所有技术类词条且分类正确
	byName := make(map[string]types.SkillCategory)
	for _, s := range profile.Technical {
		byName[s.Name] = s.Category
	}
	assert.Equal(t, types.CategoryProgramming, byName["Go"])
	assert.Equal(t, types.CategoryFrontend, byName["React"])
	assert.Equal(t, types.CategoryDatabase, byName["MySQL"])
	assert.Equal(t, types.CategoryDevOps, byName["Docker"])
	assert.Equal(t, types.CategoryCloud, byName["AWS"])
}

func TestSkillCategorizer_HeuristicDeterministic(t *testing.T) {
	cat := NewSkillCategorizer()
	first, _ := cat.Categorize(context.Background(), skillsSectionText)
	for i := 0; i < 5; i++ {
		again, _ := cat.Categorize(context.Background(), skillsSectionText)
		assert.Equal(t, first, again, "字典匹配必须是确定性的")
	}
}

func TestSkillCategorizer_WordBoundaries(t *testing.T) {
	cat := NewSkillCategorizer()

	// "Golang" 整词命中 "golang"，"Mango" 不应命中 "go"
	profile, _ := cat.Categorize(context.Background(), "Worked with Golang at Mango Inc")
	assert.Contains(t, profile.Languages, "Go")
	assert.Len(t, profile.Languages, 1)

	// 子串不构成整词时不命中
	profile, _ = cat.Categorize(context.Background(), "reactive programming enthusiast")
	assert.NotContains(t, profile.Frameworks, "React")

	// 含符号的词条
	profile, _ = cat.Categorize(context.Background(), "C++ and C# developer, some Node.js too")
	assert.Contains(t, profile.Languages, "C++")
	assert.Contains(t, profile.Languages, "C#")
	assert.Contains(t, profile.Frameworks, "Node.js")
}

func TestSkillCategorizer_AISuccess(t *testing.T) {
	mock := &agent.MockClassifier{
		Response: "分析结果如下：\n```json\n" + `{
  "technical": [
    {"name": "Go", "category": "programming"},
    {"name": "Qdrant", "category": "vector-db"},
    {"name": "go", "category": "programming"}
  ],
  "soft": ["Leadership", "leadership"],
  "frameworks": ["Gin"],
  "languages": ["Go"],
  "tools": ["Docker"],
  "certifications": []
}` + "\n```",
	}
	cat := NewSkillCategorizer(WithCategorizerClassifier(mock))
	profile, method := cat.Categorize(context.Background(), skillsSectionText)

	assert.Equal(t, types.MethodAI, method)
	assert.Equal(t, 1, mock.CallCount)
	assert.Equal(t, []string{TaskSkillCategorization}, mock.ReceivedTasks)

	// 不在封闭集合内的分类降级为other
	require.Len(t, profile.Technical, 2, "大小写不同的重复技能应去重")
	assert.Equal(t, types.CategoryProgramming, profile.Technical[0].Category)
	assert.Equal(t, types.CategoryOther, profile.Technical[1].Category)

	assert.Equal(t, []string{"Leadership"}, profile.Soft)
	assert.Equal(t, []string{"Gin"}, profile.Frameworks)
}

func TestSkillCategorizer_AIFailureFallsBack(t *testing.T) {
	mock := &agent.MockClassifier{Err: errors.New("network unreachable")}
	cat := NewSkillCategorizer(WithCategorizerClassifier(mock))
	profile, method := cat.Categorize(context.Background(), skillsSectionText)

	assert.Equal(t, types.MethodHeuristic, method, "AI失败时应回退到字典")
	assert.Contains(t, profile.Languages, "Go")
}

func TestSkillCategorizer_AIGarbageFallsBack(t *testing.T) {
	mock := &agent.MockClassifier{Response: "抱歉，我无法处理这个请求。"}
	cat := NewSkillCategorizer(WithCategorizerClassifier(mock))
	_, method := cat.Categorize(context.Background(), skillsSectionText)

	assert.Equal(t, types.MethodHeuristic, method, "响应中无JSON时应回退")
}

func TestSkillCategorizer_EmptyText(t *testing.T) {
	cat := NewSkillCategorizer()
	profile, method := cat.Categorize(context.Background(), "")

	assert.Equal(t, types.MethodHeuristic, method)
	require.NotNil(t, profile)
	assert.Empty(t, profile.Technical)
	assert.Empty(t, profile.Languages)
}
