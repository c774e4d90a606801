package prototype

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	wfnode "studio-site-api/internal/workflow/node"
)

// maxRawRunes 解析失败时回传给调用方的原始文本上限
const maxRawRunes = 2000

// Strategy 恢复成功所使用的尝试步骤
type Strategy string

const (
	StrategyStrict        Strategy = "strict"
	StrategyRepair        Strategy = "repair"
	StrategyExtractRepair Strategy = "extract_repair"
	StrategyLeadingObject Strategy = "leading_object"
	StrategyNone          Strategy = "none"
)

// Recovery 文本恢复结果；ParseFailed 为 true 时 Value 为空，Raw 为截断后的去围栏文本
type Recovery struct {
	Value       any
	Strategy    Strategy
	ParseFailed bool
	Raw         string
}

type recoveryAttempt struct {
	strategy Strategy
	parse    func(text string) (any, bool)
}

// 按顺序尝试，第一个得到对象或数组的步骤生效
var recoveryAttempts = []recoveryAttempt{
	{strategy: StrategyStrict, parse: parseContainer},
	{strategy: StrategyRepair, parse: repairContainer},
	{strategy: StrategyExtractRepair, parse: func(text string) (any, bool) {
		block, ok := wfnode.SliceOuterObject(text)
		if !ok {
			return nil, false
		}
		return repairContainer(block)
	}},
	{strategy: StrategyLeadingObject, parse: func(text string) (any, bool) {
		block, ok := wfnode.LeadingObject(text)
		if !ok {
			return nil, false
		}
		return parseContainer(block)
	}},
}

// Recover 从模型文本中恢复 JSON 值，不会返回错误
func Recover(text string) Recovery {
	cleaned := wfnode.StripCodeFence(text)
	for _, a := range recoveryAttempts {
		if v, ok := runAttempt(a, cleaned); ok {
			return Recovery{Value: v, Strategy: a.strategy}
		}
	}
	return Recovery{
		Strategy:    StrategyNone,
		ParseFailed: true,
		Raw:         wfnode.TruncateByRunes(cleaned, maxRawRunes),
	}
}

func runAttempt(a recoveryAttempt, text string) (v any, ok bool) {
	// 修复库对极端输入可能 panic，视为该步骤失败
	defer func() {
		if r := recover(); r != nil {
			v, ok = nil, false
		}
	}()
	return a.parse(text)
}

func repairContainer(text string) (any, bool) {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, false
	}
	return parseContainer(repaired)
}

// parseContainer 严格解析；只接受对象或数组，数字保留为 json.Number
func parseContainer(text string) (any, bool) {
	v, err := decodeStrict(text)
	if err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}

func decodeStrict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected trailing data")
	}
	return v, nil
}
