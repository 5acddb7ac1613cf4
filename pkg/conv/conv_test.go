package conv

import (
	"reflect"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 3.14, 3.14, true},
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"bool true", true, 1, true},
		{"string 不支持", "3.14", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToFloat64(%v) = (%v, %v)，期望 (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]any{"a", 1, 2.0, true, struct{}{}})
	want := []string{"a", "1", "2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
	if SliceAnyToString("not a slice") != nil {
		t.Error("非 slice 输入应返回 nil")
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"endpoint": "http://x", "timeout": 5}
	if got := ConfigGet[string](m, "endpoint", ""); got != "http://x" {
		t.Errorf("期望 http://x，实际 %q", got)
	}
	if got := ConfigGet[string](m, "missing", "fallback"); got != "fallback" {
		t.Errorf("缺失 key 应返回默认值，实际 %q", got)
	}
	if got := ConfigGet[string](m, "timeout", "d"); got != "d" {
		t.Errorf("类型不符应返回默认值，实际 %q", got)
	}
}

func TestConfigGetInt64(t *testing.T) {
	m := map[string]any{"a": 5, "b": 5.9, "c": "x"}
	if got := ConfigGetInt64(m, "a", 0); got != 5 {
		t.Errorf("int: 期望 5，实际 %d", got)
	}
	// YAML/JSON 数字可能解析为 float64
	if got := ConfigGetInt64(m, "b", 0); got != 5 {
		t.Errorf("float64: 期望截断为 5，实际 %d", got)
	}
	if got := ConfigGetInt64(m, "c", 9); got != 9 {
		t.Errorf("类型不符应返回默认值，实际 %d", got)
	}
}
