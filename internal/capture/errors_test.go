package capture

import "testing"

func TestWindowTitles(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"result", ResultWindowTitle, "Result"},
		{"document", DocumentWindowTitle, "Final Document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("title: got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
