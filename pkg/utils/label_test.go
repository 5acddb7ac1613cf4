package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{"空 existing 取 incoming", Label{}, Label{Value: "ai", Source: "compose"}, Label{Value: "ai", Source: "compose"}},
		{"空 incoming 取 existing", Label{Value: "feed", Source: "trend"}, Label{}, Label{Value: "feed", Source: "trend"}},
		{
			"双方非空按分隔符累积",
			Label{Value: "feed", Source: "trend"},
			Label{Value: "rating", Source: "compose"},
			Label{Value: "feed|rating", Source: "trend,compose"},
		},
		{
			"incoming 无 Source 时保留 existing 的",
			Label{Value: "a", Source: "trend"},
			Label{Value: "b"},
			Label{Value: "a|b", Source: "trend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v，期望 %+v", got, tt.want)
			}
		})
	}
}
