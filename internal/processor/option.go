package processor

import (
	"log"
	"time"

	"resume-analyzer-go/internal/agent"
	"resume-analyzer-go/internal/storage"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithcompSegmenter 设置章节分段组件
func WithcompSegmenter(s Segmenter) ComponentOpt {
	return func(c *Components) {
		c.Segmenter = s
	}
}

// WithcompContactExtractor 设置联系信息提取组件
func WithcompContactExtractor(e ContactExtractor) ComponentOpt {
	return func(c *Components) {
		c.ContactExtractor = e
	}
}

// WithcompSkillClassifier 设置技能分类组件
func WithcompSkillClassifier(s SkillClassifier) ComponentOpt {
	return func(c *Components) {
		c.SkillClassifier = s
	}
}

// WithcompExperienceParser 设置经历分析组件
func WithcompExperienceParser(p ExperienceParser) ComponentOpt {
	return func(c *Components) {
		c.ExperienceParser = p
	}
}

// WithcompEducationParser 设置学历提取组件
func WithcompEducationParser(p EducationParser) ComponentOpt {
	return func(c *Components) {
		c.EducationParser = p
	}
}

// WithcompScorer 设置质量打分组件
func WithcompScorer(s Scorer) ComponentOpt {
	return func(c *Components) {
		c.Scorer = s
	}
}

// WithcompClassifier 设置AI分类器，用于增强联系信息提取
func WithcompClassifier(c2 agent.Classifier) ComponentOpt {
	return func(c *Components) {
		c.Classifier = c2
	}
}

// WithcompStorage 设置聚合存储服务
func WithcompStorage(s *storage.Storage) ComponentOpt {
	return func(c *Components) {
		c.Storage = s
	}
}

// ----- 设置选项 -----

// WithsetMinTextLength 设置最小输入长度
func WithsetMinTextLength(n int) SettingOpt {
	return func(s *Settings) {
		if n > 0 {
			s.MinTextLength = n
		}
	}
}

// WithsetEnhancedContact 开启AI增强联系信息提取
func WithsetEnhancedContact(enabled bool) SettingOpt {
	return func(s *Settings) {
		s.EnhancedContact = enabled
	}
}

// WithsetParserVersion 设置结果中记录的解析器版本号
func WithsetParserVersion(v string) SettingOpt {
	return func(s *Settings) {
		if v != "" {
			s.ParserVersion = v
		}
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(l *log.Logger) SettingOpt {
	return func(s *Settings) {
		if l != nil {
			s.Logger = l
		}
	}
}

// WithsetTimeLocation 设置时区
func WithsetTimeLocation(loc *time.Location) SettingOpt {
	return func(s *Settings) {
		if loc != nil {
			s.TimeLocation = loc
		}
	}
}
