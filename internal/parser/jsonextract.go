package parser

import (
	"regexp"
	"strings"
)

// jsonCodeBlockRe 匹配 ```json ... ``` 代码块
var jsonCodeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON 从自由文本中提取第一个完整的JSON对象。
// 模型的响应可能把JSON包在散文或Markdown代码块里，
// 所以先尝试代码块，再回退到括号配对扫描。
// 提取不到返回空字符串，由调用方决定如何回退。
func ExtractJSON(text string) string {
	// 尝试提取 ```json ... ``` 代码块中的内容
	matches := jsonCodeBlockRe.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// 回退：寻找第一个配平的 {...} 片段
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	level := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			// 字符串内的花括号不参与配对
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}
	return ""
}
