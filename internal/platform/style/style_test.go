package style

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/espipes/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(1, 1, "c", core.ColorDefault)

	got := RenderScreen(s, false)
	if got != "ab\n c" {
		t.Errorf("RenderScreen(plain) = %q, want %q", got, "ab\n c")
	}
}

func TestRenderScreenColorKeepsText(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGray)

	got := RenderScreen(s, true)
	if !strings.Contains(got, "ab") || !strings.Contains(got, "cd") {
		t.Errorf("RenderScreen(color) lost text: %q", got)
	}
}

func TestForegroundUnknown(t *testing.T) {
	st := Foreground(core.Color(200))
	if st.GetForeground() != (lipgloss.NoColor{}) {
		t.Errorf("unknown colour should fall back to the default style")
	}
}

func TestRenderOff(t *testing.T) {
	if got := Render(Error, false, "boom"); got != "boom" {
		t.Errorf("Render(off) = %q, want %q", got, "boom")
	}
}
