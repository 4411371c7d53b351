package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_CodeBlock(t *testing.T) {
	raw := "好的，分析结果如下：\n```json\n{\"score\": 85}\n```\n希望对你有帮助。"
	assert.Equal(t, `{"score": 85}`, ExtractJSON(raw))

	// 无语言标记的代码块
	raw = "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, ExtractJSON(raw))
}

func TestExtractJSON_BareObject(t *testing.T) {
	raw := `前置说明 {"nested": {"deep": [1, 2]}} 后置说明`
	got := ExtractJSON(raw)
	assert.Equal(t, `{"nested": {"deep": [1, 2]}}`, got)

	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &v))
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"note": "包含 } 和 { 的字符串", "ok": true}`
	got := ExtractJSON(raw)
	assert.Equal(t, raw, got)

	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &v))
	assert.Equal(t, true, v["ok"])
}

func TestExtractJSON_EscapedQuote(t *testing.T) {
	raw := `{"quote": "she said \"hi\" {"}`
	got := ExtractJSON(raw)
	assert.Equal(t, raw, got)
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	assert.Empty(t, ExtractJSON(`{"truncated": `))
	assert.Empty(t, ExtractJSON("没有任何结构化内容"))
	assert.Empty(t, ExtractJSON(""))
}

func TestExtractJSON_FirstObjectWins(t *testing.T) {
	raw := `{"first": 1} {"second": 2}`
	assert.Equal(t, `{"first": 1}`, ExtractJSON(raw))
}
