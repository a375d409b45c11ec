package typingsgen

import "testing"

func TestMajorMinor(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"v1", "1.0"},
		{"v2", "2.0"},
		{"v1.1", "1.1"},
		{"v4.2", "4.2"},
		{"v1beta2", "1.0"},
		{"directory_v1", "1.0"},
		{"datatransfer_v1", "1.0"},
		{"vm_v2.1", "2.1"},
		{"alpha", "0.0"},
		{"", "0.0"},
	}
	for _, tt := range tests {
		if got := MajorMinor(tt.version); got != tt.want {
			t.Errorf("MajorMinor(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}
