package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// DebugDump 是调试 JSON 的顶层结构。
type DebugDump struct {
	Options Options `json:"options"`
	Stats   Stats   `json:"stats"`
	Result  *Result `json:"result"`
}

// Dump 汇总引擎配置、缓存统计与一次排版结果。
func (e *Engine) Dump(res *Result) DebugDump {
	return DebugDump{Options: e.opts, Stats: e.stats, Result: res}
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(dump DebugDump, path string) error {
	if dump.Result == nil {
		return nil
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化调试 JSON 失败: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
