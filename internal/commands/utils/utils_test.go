package utils

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 segundos"},
		{45 * time.Second, "45 segundos"},
		{time.Hour + 2*time.Minute, "1 horas, 2 minutos"},
		{49*time.Hour + 5*time.Second, "2 días, 1 horas, 5 segundos"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDuration(tt.in); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHelpListsEveryModerationCommand(t *testing.T) {
	for _, name := range []string{"warn", "warns", "clearwarn", "clearwarns", "mute", "unmute", "kick", "ban", "unban", "bans"} {
		if !strings.Contains(helpText, "`/mod "+name+" ") && !strings.Contains(helpText, "`/mod "+name+"`") {
			t.Errorf("help text does not mention /mod %s", name)
		}
	}
	if !strings.Contains(helpText, "/report") {
		t.Error("help text does not mention /report")
	}
}
