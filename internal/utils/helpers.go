package utils

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
)

// StringPtr 返回字符串的指针
func StringPtr(s string) *string {
	return &s
}

// TruncateUTF8 按字节上限截断字符串，并回退到rune边界，
// 保证不会把多字节字符切成半个
func TruncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// TimePtr returns a pointer to a time.Time object
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// IntPtr returns a pointer to an int
func IntPtr(i int) *int {
	return &i
}

// CalculateMD5 computes the MD5 hash of a byte slice.
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// ToJSON 辅助函数: 将任意值序列化为datatypes.JSON
// 序列化失败时返回空JSON对象，调用方无需处理错误
func ToJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(jsonBytes)
}

// ArrayToJSON 辅助函数: 将字符串数组转换为JSON
func ArrayToJSON(arr []string) datatypes.JSON {
	if len(arr) == 0 {
		return datatypes.JSON("[]")
	}
	jsonBytes, err := json.Marshal(arr)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(jsonBytes)
}
