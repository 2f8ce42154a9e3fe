package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExtractionStrategy 從模型回應中擷取 JSON 物件的方式
type ExtractionStrategy string

const (
	// StrategyGreedy 取第一個 '{' 到最後一個 '}' 之間的內容
	StrategyGreedy ExtractionStrategy = "greedy"
	// StrategyBalanced 依括號深度掃描，忽略字串內的括號，回傳第一個完整物件
	StrategyBalanced ExtractionStrategy = "balanced"
)

// ParseExtractionStrategy 解析設定值，未知值回傳 false
func ParseExtractionStrategy(s string) (ExtractionStrategy, bool) {
	switch ExtractionStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyGreedy:
		return StrategyGreedy, true
	case StrategyBalanced:
		return StrategyBalanced, true
	}
	return "", false
}

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

// ExtractJSONObject 從任意文字中擷取並解析 JSON 物件
func ExtractJSONObject(text string, strategy ExtractionStrategy) (map[string]interface{}, error) {
	var (
		candidate string
		ok        bool
	)

	switch strategy {
	case StrategyBalanced:
		candidate, ok = balancedObject(text)
		if !ok {
			// 沒有完整物件時退回 greedy，讓截斷的 JSON 回報解析錯誤
			candidate, ok = greedyObject(text)
		}
	default:
		candidate, ok = greedyObject(text)
	}

	if !ok {
		return nil, ErrNoJSONFound
	}

	var result map[string]interface{}
	if err := ParseJSON(candidate, &result); err != nil {
		return nil, NewMalformedJSONError(err)
	}
	if result == nil {
		return nil, NewMalformedJSONError(fmt.Errorf("expected a JSON object"))
	}
	return result, nil
}

func greedyObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

func balancedObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// ToJSON 將結構體轉換為 JSON 字符串
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
