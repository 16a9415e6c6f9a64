package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load 读取绑定数据：以 '{' 开头的参数按内联 JSON 解析，
// 否则按文件处理，.toml 用 TOML 解码，其余按 JSON 解码。
func Load(arg string) (any, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}
	if strings.HasPrefix(arg, "{") {
		return decodeJSON([]byte(arg))
	}
	raw, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}
	if strings.EqualFold(filepath.Ext(arg), ".toml") {
		var data map[string]any
		if _, err := toml.Decode(string(raw), &data); err != nil {
			return nil, fmt.Errorf("解析 TOML 数据失败: %w", err)
		}
		return data, nil
	}
	return decodeJSON(raw)
}

func decodeJSON(raw []byte) (any, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 JSON 数据失败: %w", err)
	}
	return data, nil
}
