package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Metadata
	}{
		{
			name:     "conventional name",
			filename: "LCA Dec 2025.pdf",
			want:     Metadata{School: "LCA", Month: "December", Year: 2025},
		},
		{
			name:     "lowercase school and month",
			filename: "gwc feedback jan 2024.pdf",
			want:     Metadata{School: "GWC", Month: "January", Year: 2024},
		},
		{
			name:     "no school",
			filename: "Monthly Feedback Mar 2025.pdf",
			want:     Metadata{School: "Unknown", Month: "March", Year: 2025},
		},
		{
			name:     "no month",
			filename: "CBR 2023 walkthrough.pdf",
			want:     Metadata{School: "CBR", Month: "Unknown", Year: 2023},
		},
		{
			name:     "nothing recognizable",
			filename: "report.pdf",
			want:     Metadata{School: "Unknown", Month: "Unknown", Year: 2025},
		},
		{
			name:     "empty",
			filename: "",
			want:     Metadata{School: "Unknown", Month: "Unknown", Year: 2025},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFilename(tt.filename, fixedClock))
		})
	}
}
