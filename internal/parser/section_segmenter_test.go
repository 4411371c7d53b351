package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/types"
)

func TestSectionSegmenter_BasicSegmentation(t *testing.T) {
	text := `Jane Doe
jane@x.com

Summary
Seasoned engineer.

Experience
Engineer at Acme Corp 2019-2022

Education
B.S. Computer Science, State University, 2019

Skills
Go, Python, Docker`

	seg := NewSectionSegmenter()
	set := seg.Segment(text)

	require.NotNil(t, set)
	assert.Equal(t, 4, set.Len(), "应识别出 4 个章节")

	exp, ok := set.Get(types.SectionExperience)
	require.True(t, ok, "应包含经历章节")
	assert.Contains(t, exp, "Acme Corp")

	sum, ok := set.Get(types.SectionSummary)
	require.True(t, ok)
	assert.Equal(t, "Seasoned engineer.", sum)

	assert.True(t, set.Has(types.SectionSkills))
	assert.True(t, set.Has(types.SectionEducation))
	assert.False(t, set.Has(types.SectionProjects))
}

func TestSectionSegmenter_HeaderVariants(t *testing.T) {
	cases := []struct {
		header string
		kind   types.SectionKind
	}{
		{"WORK EXPERIENCE", types.SectionExperience},
		{"Employment History", types.SectionExperience},
		{"Professional Profile", types.SectionSummary},
		{"Objective", types.SectionSummary},
		{"About Me", types.SectionSummary},
		{"Academic Background", types.SectionEducation},
		{"Technical Skills:", types.SectionSkills},
		{"Core Competencies", types.SectionSkills},
		{"Projects", types.SectionProjects},
		{"Awards & Honors", types.SectionAchievements},
		{"Certifications", types.SectionCertifications},
	}

	seg := NewSectionSegmenter()
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			set := seg.Segment(tc.header + "\nsome body text")
			require.Equal(t, 1, set.Len())
			assert.Equal(t, tc.kind, set.Sections[0].Kind)
			assert.Equal(t, "some body text", set.Sections[0].Text)
		})
	}
}

func TestSectionSegmenter_HeaderVariants_Prefixed(t *testing.T) {
	// 带装饰符的标题也应识别
	seg := NewSectionSegmenter()
	set := seg.Segment("== Skills ==\nGo")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, types.SectionSkills, set.Sections[0].Kind)
}

func TestSectionSegmenter_LongLineNotHeader(t *testing.T) {
	long := "Experience has taught me that building reliable distributed systems requires patience and discipline"
	seg := NewSectionSegmenter()
	set := seg.Segment("Summary\n" + long)

	require.Equal(t, 1, set.Len(), "长句不应被识别为标题")
	assert.Equal(t, types.SectionSummary, set.Sections[0].Kind)
	assert.Contains(t, set.Sections[0].Text, "distributed systems")
}

func TestSectionSegmenter_MaxHeaderLengthOption(t *testing.T) {
	header := "Experience " + strings.Repeat("x", 45)
	require.Greater(t, len(header), defaultMaxHeaderLength)

	// 默认阈值下不是标题
	set := NewSectionSegmenter().Segment(header + "\nbody")
	assert.Equal(t, 0, set.Len())

	// 放宽阈值后识别为标题
	set = NewSectionSegmenter(WithMaxHeaderLength(200)).Segment(header + "\nbody")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, types.SectionExperience, set.Sections[0].Kind)
}

func TestSectionSegmenter_DuplicateHeadersKeepLast(t *testing.T) {
	text := `Skills
Go

Experience
Engineer at Acme Corp 2019-2022

Skills
Python, Docker`

	set := NewSectionSegmenter().Segment(text)
	require.Equal(t, 2, set.Len())

	sk, ok := set.Get(types.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "Python, Docker", sk, "重复标题应保留最后一块")

	// 输出顺序跟随保留块在原文中的位置
	assert.Equal(t, types.SectionExperience, set.Sections[0].Kind)
	assert.Equal(t, types.SectionSkills, set.Sections[1].Kind)
}

func TestSectionSegmenter_NoHeaders(t *testing.T) {
	set := NewSectionSegmenter().Segment("just a plain paragraph of text with no recognizable structure at all")
	assert.True(t, set.IsEmpty())
	assert.Equal(t, 0, set.Len())
}

func TestSectionSegmenter_EmptyInput(t *testing.T) {
	set := NewSectionSegmenter().Segment("")
	require.NotNil(t, set)
	assert.True(t, set.IsEmpty())
}

func TestSectionSegmenter_ContentsAreSubsequenceOfOriginal(t *testing.T) {
	texts := []string{
		"Summary\nabout me\n\nExperience\nEngineer at Acme Corp 2019-2022\n\nSkills\nGo, Python",
		"Skills\nGo\n\nExperience\nwork\n\nSkills\nPython",
		"preamble line\nEducation\nB.S. 2019\nProjects\nside project",
	}
	seg := NewSectionSegmenter()
	for _, text := range texts {
		set := seg.Segment(text)
		// 按检测顺序拼接的章节内容必须是原文的子序列：
		// 不重复、不乱序
		pos := 0
		for _, s := range set.Sections {
			if s.Text == "" {
				continue
			}
			idx := strings.Index(text[pos:], s.Text)
			require.GreaterOrEqual(t, idx, 0, "章节内容应按序出现在原文中")
			pos += idx + len(s.Text)
		}
	}
}

func TestSectionSegmenter_PreambleIgnored(t *testing.T) {
	text := "Jane Doe\njane@x.com\n\nExperience\nEngineer at Acme Corp"
	set := NewSectionSegmenter().Segment(text)

	require.Equal(t, 1, set.Len())
	assert.NotContains(t, set.Sections[0].Text, "jane@x.com", "标题前的内容不应归入任何章节")
}
