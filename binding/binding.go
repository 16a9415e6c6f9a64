package binding

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ErrNotFound 表示路径在数据中不存在。
var ErrNotFound = errors.New("binding: path not found")

// PathError 描述解析失败的路径与出错的片段。
type PathError struct {
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("binding: %s (at %q): %v", e.Path, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Expand 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Expand(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if s, err := Lookup(data, path); err == nil {
			return s
		}
		return match
	})
}

// Lookup 解析 user.name、items[0].title 形式的路径并格式化为字符串。
func Lookup(data any, path string) (string, error) {
	v, err := Resolve(data, path)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

// Format 把解析出的值转成文本；整数值的浮点数不带小数部分。
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Resolve 返回路径指向的原始值。
func Resolve(data any, path string) (any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &PathError{Path: path, Err: errors.New("empty path")}
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, err := parseSegment(segment)
		if err != nil {
			return nil, &PathError{Path: path, Segment: segment, Err: err}
		}
		if name != "" {
			var ok bool
			if current, ok = descendMap(current, name); !ok {
				return nil, &PathError{Path: path, Segment: segment, Err: ErrNotFound}
			}
		}
		for _, idx := range indexes {
			var ok bool
			if current, ok = descendArray(current, idx); !ok {
				return nil, &PathError{Path: path, Segment: segment, Err: ErrNotFound}
			}
		}
	}
	return current, nil
}

func parseSegment(segment string) (string, []int, error) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, nil
	}
	name, rest := segment[:i], segment[i:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, fmt.Errorf("malformed index %q", rest)
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, fmt.Errorf("index %q: %w", rest[1:end], err)
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, nil
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []map[string]any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
