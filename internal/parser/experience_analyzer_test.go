package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/types"
)

// fixedNowAnalyzer 固定当前时间，让 present 区间的结果可断言
func fixedNowAnalyzer(year int) *ExperienceAnalyzer {
	a := NewExperienceAnalyzer()
	a.now = func() time.Time {
		return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return a
}

func TestExperienceAnalyzer_SingleRole(t *testing.T) {
	profile := NewExperienceAnalyzer().Analyze("Engineer at Acme Corp 2019-2022")

	assert.InDelta(t, 3.0, profile.TotalYears, 1e-9)
	assert.Contains(t, profile.Companies, "Acme Corp")

	require.Len(t, profile.Roles, 1)
	role := profile.Roles[0]
	assert.Equal(t, "Engineer", role.Title)
	assert.Equal(t, "Acme Corp", role.Company)
	assert.Equal(t, "2019-2022", role.Duration)
}

func TestExperienceAnalyzer_TotalYearsSumsRanges(t *testing.T) {
	text := `Software Engineer at Acme Corp 2015-2018
Senior Engineer at Globex Inc 2018-2022`
	profile := NewExperienceAnalyzer().Analyze(text)

	// 3 + 4，区间重叠时也会重复累加
	assert.InDelta(t, 7.0, profile.TotalYears, 1e-9)
	assert.Equal(t, []string{"Acme Corp", "Globex Inc"}, profile.Companies)
	assert.Len(t, profile.Roles, 2)
}

func TestExperienceAnalyzer_PresentRange(t *testing.T) {
	profile := fixedNowAnalyzer(2026).Analyze("Staff Engineer at Initech 2020-present")
	assert.InDelta(t, 6.0, profile.TotalYears, 1e-9)

	profile = fixedNowAnalyzer(2026).Analyze("Developer at Initech 2024 - Current")
	assert.InDelta(t, 2.0, profile.TotalYears, 1e-9)
}

func TestExperienceAnalyzer_InvertedRangeIgnored(t *testing.T) {
	profile := NewExperienceAnalyzer().Analyze("Engineer at Acme Corp 2022-2019")
	assert.InDelta(t, 0.0, profile.TotalYears, 1e-9, "倒置区间贡献为零")
}

func TestExperienceAnalyzer_CompanyWithoutAtKeyword(t *testing.T) {
	// 无职位关键词的行，靠公司后缀识别
	profile := NewExperienceAnalyzer().Analyze("Globex Technologies 2016-2019\nshipped various things")
	assert.Contains(t, profile.Companies, "Globex Technologies")
	assert.Empty(t, profile.Roles)
}

func TestExperienceAnalyzer_DashSeparatedCompanyLine(t *testing.T) {
	// "公司 - 职位" 形式：破折号之前是公司名
	profile := NewExperienceAnalyzer().Analyze("Acme Corp – Senior Software Developer 2019-2022")

	assert.Equal(t, []string{"Acme Corp"}, profile.Companies)
	require.Len(t, profile.Roles, 1)
	assert.Equal(t, "Senior Software Developer", profile.Roles[0].Title)
	assert.Equal(t, "Acme Corp", profile.Roles[0].Company)
	assert.Equal(t, "2019-2022", profile.Roles[0].Duration)

	// 普通连字符同样处理，描述行只产出公司
	profile = NewExperienceAnalyzer().Analyze("Globex Technologies - Leading provider of widgets")
	assert.Equal(t, []string{"Globex Technologies"}, profile.Companies)
	assert.Empty(t, profile.Roles)
}

func TestExperienceAnalyzer_DashFormDedupesWithAtForm(t *testing.T) {
	text := `Engineer at Acme Corp 2015-2018
Acme Corp – Consulting work`
	profile := NewExperienceAnalyzer().Analyze(text)

	assert.Equal(t, []string{"Acme Corp"}, profile.Companies, "两种写法指向同一公司时只记一次")
}

func TestExperienceAnalyzer_RoleWithoutCompany(t *testing.T) {
	profile := NewExperienceAnalyzer().Analyze("Backend Developer 2019-2021")

	require.Len(t, profile.Roles, 1)
	assert.Equal(t, "Backend Developer", profile.Roles[0].Title)
	assert.Equal(t, "Unknown", profile.Roles[0].Company)
	assert.Equal(t, "2019-2021", profile.Roles[0].Duration)
	assert.Empty(t, profile.Companies)
}

func TestExperienceAnalyzer_RoleWithoutDates(t *testing.T) {
	profile := NewExperienceAnalyzer().Analyze("Engineering Manager at Initech Systems")

	require.Len(t, profile.Roles, 1)
	assert.Equal(t, "Unknown", profile.Roles[0].Duration)
	assert.Equal(t, "Initech Systems", profile.Roles[0].Company)
	assert.InDelta(t, 0.0, profile.TotalYears, 1e-9)
}

func TestExperienceAnalyzer_CompanyDedupeIsCaseSensitive(t *testing.T) {
	text := `Engineer at Acme Corp 2015-2017
Senior Engineer at Acme Corp 2017-2020
Lead Engineer at ACME CORP 2020-2022`
	profile := NewExperienceAnalyzer().Analyze(text)

	// 完全相同的写法去重，大小写不同视为不同公司
	assert.Equal(t, []string{"Acme Corp", "ACME CORP"}, profile.Companies)
}

func TestExperienceAnalyzer_Industries(t *testing.T) {
	text := "Engineer at PayFlow Inc 2019-2022, built fintech payment rails for banking clients and a healthcare portal"
	profile := NewExperienceAnalyzer().Analyze(text)

	assert.Equal(t, []string{"Finance", "Healthcare"}, profile.Industries, "行业标签应去重并排序")
}

func TestExperienceAnalyzer_EmptyInput(t *testing.T) {
	profile := NewExperienceAnalyzer().Analyze("")

	require.NotNil(t, profile)
	assert.InDelta(t, 0.0, profile.TotalYears, 1e-9)
	assert.Empty(t, profile.Roles)
	assert.Empty(t, profile.Companies)
	assert.Empty(t, profile.Industries)

	var _ types.ExperienceProfile = *profile
}
