package discord

import (
	"testing"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
)

func TestEventEmbed(t *testing.T) {
	event := moderation.NewEvent(moderation.ActionMute, "g1", "42", "7", "spam")

	embed := EventEmbed(event)

	if embed.Title != "Mute" {
		t.Errorf("Title = %v, want %v", embed.Title, "Mute")
	}
	if len(embed.Fields) != 3 {
		t.Fatalf("Fields length = %v, want %v", len(embed.Fields), 3)
	}

	want := [][2]string{{"User", "<@42>"}, {"Moderator", "<@7>"}, {"Reason", "spam"}}
	for i, field := range embed.Fields {
		if field.Name != want[i][0] || field.Value != want[i][1] {
			t.Errorf("Field %d = %s: %s, want %s: %s", i, field.Name, field.Value, want[i][0], want[i][1])
		}
	}
}

func TestEventEmbedReportAndWarn(t *testing.T) {
	report := EventEmbed(moderation.NewEvent(moderation.ActionReport, "g1", "42", "9", "raid"))
	if report.Fields[1].Name != "Reporter" {
		t.Errorf("report second field = %v, want Reporter", report.Fields[1].Name)
	}

	warn := moderation.NewEvent(moderation.ActionWarn, "g1", "42", "7", "spam")
	warn.Count = 3
	embed := EventEmbed(warn)
	if len(embed.Fields) != 4 || embed.Fields[3].Value != "3" {
		t.Errorf("warn embed should carry the warning count")
	}
}
