package themes

import (
	"testing"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "catppuccin-mocha", GetTheme("catppuccin-mocha").Name)
	assert.Equal(t, "default", GetTheme("").Name)
	assert.Equal(t, "default", GetTheme("solarized").Name)
	assert.Equal(t, []string{"catppuccin-mocha", "default"}, Names())
}

func TestTheme_Notice(t *testing.T) {
	tests := []struct {
		level model.NoticeLevel
		icon  string
	}{
		{level: model.NoticeSuccess, icon: "✓"},
		{level: model.NoticeWarning, icon: "⚠"},
		{level: model.NoticeError, icon: "✗"},
		{level: model.NoticeInfo, icon: "ℹ"},
		{level: "trace", icon: "ℹ"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got := Default.Notice(model.Notice{Level: tt.level, Message: "Approved 2 records"})
			assert.Contains(t, got, tt.icon+" Approved 2 records")
		})
	}
}
