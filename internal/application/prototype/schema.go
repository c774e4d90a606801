package prototype

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// PlanSchema 由 SitePlan 结构推导 JSON Schema，作为模型输出的结构提示；每次返回新的副本。
// 最终结构仍以 Validate 为准
func PlanSchema() (map[string]any, error) {
	s, err := jsonschema.For[SitePlan](nil)
	if err != nil {
		return nil, fmt.Errorf("infer site plan schema: %w", err)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal site plan schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode site plan schema: %w", err)
	}
	return out, nil
}

func mustPlanSchema() map[string]any {
	s, err := PlanSchema()
	if err != nil {
		panic(err)
	}
	return s
}
