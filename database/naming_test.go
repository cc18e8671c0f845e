package database

import "testing"

func TestTablePrefix(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"players", "p"},
		{"skills", "s"},
		{"skill_ratings", "sr"},
		{"generation_sessions", "gs"},
		{"session_team_players", "stp"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			if got := TablePrefix(tt.table); got != tt.want {
				t.Errorf("TablePrefix(%q) = %q, want %q", tt.table, got, tt.want)
			}
		})
	}
}

func TestColumnNamePrefixing(t *testing.T) {
	ns := NamingStrategy{}

	tests := []struct {
		table  string
		column string
		want   string
	}{
		{"players", "Name", "p_name"},
		{"skill_ratings", "PlayerId", "sr_player_id"},
		{"session_team_players", "Slot", "stp_slot"},
		{"", "Name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.table+"/"+tt.column, func(t *testing.T) {
			if got := ns.ColumnName(tt.table, tt.column); got != tt.want {
				t.Errorf("ColumnName(%q, %q) = %q, want %q", tt.table, tt.column, got, tt.want)
			}
		})
	}
}
