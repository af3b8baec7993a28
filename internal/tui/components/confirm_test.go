package components

import (
	"testing"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmModel_Update(t *testing.T) {
	fail := action.Action{Name: "fail", Label: "Fail", Destructive: true, ReasonParam: "notes"}
	expire := action.Action{Name: "expire", Label: "Expire", Destructive: true}

	tests := []struct {
		name         string
		request      action.ConfirmRequest
		keys         []tea.KeyMsg
		want         model.ConfirmResult
		wantComplete bool
	}{
		{
			name:         "y confirms without value",
			request:      action.ConfirmRequest{Action: expire, Prompt: "Expire 2 record(s)?", Count: 2},
			keys:         []tea.KeyMsg{runes("y")},
			want:         model.Confirmed(""),
			wantComplete: true,
		},
		{
			name:         "enter confirms without value",
			request:      action.ConfirmRequest{Action: expire, Count: 1},
			keys:         []tea.KeyMsg{{Type: tea.KeyEnter}},
			want:         model.Confirmed(""),
			wantComplete: true,
		},
		{
			name:         "n cancels",
			request:      action.ConfirmRequest{Action: expire, Count: 1},
			keys:         []tea.KeyMsg{runes("n")},
			want:         model.Cancelled(),
			wantComplete: true,
		},
		{
			name:         "value is collected",
			request:      action.ConfirmRequest{Action: fail, Count: 1, ValueLabel: "notes"},
			keys:         []tea.KeyMsg{runes("d"), runes("u"), runes("p"), {Type: tea.KeyEnter}},
			want:         model.Confirmed("dup"),
			wantComplete: true,
		},
		{
			name:         "y is text when collecting a value",
			request:      action.ConfirmRequest{Action: fail, Count: 1, ValueLabel: "notes"},
			keys:         []tea.KeyMsg{runes("y")},
			wantComplete: false,
		},
		{
			name:         "escape cancels value prompt",
			request:      action.ConfirmRequest{Action: fail, Count: 1, ValueLabel: "notes"},
			keys:         []tea.KeyMsg{runes("x"), {Type: tea.KeyEsc}},
			want:         model.Cancelled(),
			wantComplete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModel(tt.request, themes.Default)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			assert.Equal(t, tt.wantComplete, m.IsComplete())
			if tt.wantComplete {
				assert.Equal(t, tt.want, m.Result())
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	req := action.ConfirmRequest{
		Action:     action.Action{Name: "fail", Label: "Fail", Destructive: true},
		Prompt:     "Fail 3 record(s)?",
		Count:      3,
		ValueLabel: "notes",
	}
	m := NewConfirmModel(req, themes.Default)
	m.Resize(100, 30)

	out := m.View()
	assert.Contains(t, out, "Fail 3 record(s)?")
	assert.Contains(t, out, "Records: 3")
	assert.Contains(t, out, "notes:")
}
