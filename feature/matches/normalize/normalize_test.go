package normalize

import (
	"errors"
	"testing"

	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/henrik/henriktest"
	"valortracker/feature/matches/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RankingIsStable(t *testing.T) {
	raw := henriktest.Match("m1", 13, 8,
		henriktest.Player{PUUID: "a", Team: "Red", Score: 30},
		henriktest.Player{PUUID: "b", Team: "Blue", Score: 30},
		henriktest.Player{PUUID: "c", Team: "Red", Score: 10},
	)

	_, roster, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, roster, 3)

	assert.Equal(t, "a", roster[0].PlayerID)
	assert.Equal(t, 1, roster[0].Position)
	assert.Equal(t, "b", roster[1].PlayerID)
	assert.Equal(t, 2, roster[1].Position)
	assert.Equal(t, "c", roster[2].PlayerID)
	assert.Equal(t, 3, roster[2].Position)
}

func TestNormalize_ResultWinLose(t *testing.T) {
	raw := henriktest.Match("m1", 13, 8,
		henriktest.Player{PUUID: "r1", Team: "Red", Score: 100},
		henriktest.Player{PUUID: "b1", Team: "Blue", Score: 300},
		henriktest.Player{PUUID: "r2", Team: "Red", Score: 200},
	)

	match, roster, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, models.TeamRed, match.WinningTeam)

	for _, p := range roster {
		switch p.Team {
		case models.TeamRed:
			assert.Equal(t, models.ResultWin, p.Result, p.PlayerID)
			assert.Equal(t, 13, p.RoundsWon)
			assert.Equal(t, 8, p.RoundsLost)
		case models.TeamBlue:
			assert.Equal(t, models.ResultLose, p.Result, p.PlayerID)
			assert.Equal(t, 8, p.RoundsWon)
			assert.Equal(t, 13, p.RoundsLost)
		}
	}
}

func TestNormalize_Draw(t *testing.T) {
	match, roster, err := Normalize(henriktest.Match("m1", 12, 12, henriktest.Roster("a", "b")...))
	require.NoError(t, err)
	assert.Equal(t, models.TeamDraw, match.WinningTeam)
	for _, p := range roster {
		assert.Equal(t, models.ResultDraw, p.Result)
	}
}

func TestNormalize_DerivedFields(t *testing.T) {
	match, roster, err := Normalize(henriktest.Match("m1", 13, 8, henriktest.Roster("a", "b")...))
	require.NoError(t, err)

	assert.Equal(t, "m1", match.ID)
	assert.Equal(t, "Ascent", match.MapName)
	assert.Equal(t, int64(1700000000), match.StartTime.Unix())
	assert.Equal(t, 21, match.RoundsPlayed)
	assert.Equal(t, int64(2_100_000), match.DurationMS)
	assert.Equal(t, 13, match.RedRounds)
	assert.Equal(t, 8, match.BlueRounds)

	a := roster[0]
	assert.Equal(t, "m1", a.MatchID)
	assert.Equal(t, 25, a.OtherShots)
	assert.Equal(t, 10, a.Headshots)
	assert.Equal(t, 3000, a.DamageDealt)
	assert.Equal(t, 2500, a.DamageTaken)
	assert.Equal(t, "Jett", a.AgentName)
	assert.Equal(t, "Gold 2", a.RankTier)
	assert.False(t, a.Linked)
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := henriktest.Match("m1", 13, 11, henriktest.Roster("a", "b")...)
	m1, r1, err := Normalize(raw)
	require.NoError(t, err)
	m2, r2, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
	assert.Equal(t, r1, r2)
}

func TestNormalize_RoundsPlayedFallback(t *testing.T) {
	raw := henriktest.Match("m1", 13, 5, henriktest.Roster("a", "b")...)
	raw.Metadata.RoundsPlayed = nil

	match, _, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 18, match.RoundsPlayed)
}

func TestNormalize_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(m *henrik.RawMatch)
		field string
	}{
		{"no metadata", func(m *henrik.RawMatch) { m.Metadata = nil }, "metadata"},
		{"no id", func(m *henrik.RawMatch) { m.Metadata.MatchID = nil }, "metadata.matchid"},
		{"no map", func(m *henrik.RawMatch) { m.Metadata.Map = nil }, "metadata.map"},
		{"no start", func(m *henrik.RawMatch) { m.Metadata.GameStart = nil }, "metadata.game_start"},
		{"no teams", func(m *henrik.RawMatch) { m.Teams = nil }, "teams.red.rounds_won"},
		{"no blue rounds", func(m *henrik.RawMatch) { m.Teams.Blue.RoundsWon = nil }, "teams.blue.rounds_won"},
		{"no players", func(m *henrik.RawMatch) { m.Players.AllPlayers = nil }, "players.all_players"},
		{"no puuid", func(m *henrik.RawMatch) { m.Players.AllPlayers[1].PUUID = nil }, "players.all_players[1].puuid"},
		{"bad team", func(m *henrik.RawMatch) { team := "Green"; m.Players.AllPlayers[0].Team = &team }, "players.all_players[0].team"},
		{"no stats", func(m *henrik.RawMatch) { m.Players.AllPlayers[0].Stats = nil }, "players.all_players[0].stats"},
		{"no score", func(m *henrik.RawMatch) { m.Players.AllPlayers[0].Stats.Score = nil }, "players.all_players[0].stats.score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := henriktest.Match("m1", 13, 8, henriktest.Roster("a", "b")...)
			tt.edit(&raw)

			_, _, err := Normalize(raw)
			var ne *models.NormalizationError
			require.True(t, errors.As(err, &ne), "got %v", err)
			assert.Equal(t, tt.field, ne.Field)
			assert.True(t, models.IsNormalization(err), "skipped records are recognised by the sync loop")
		})
	}
}

func TestNormalize_DuplicateRosterEntry(t *testing.T) {
	raw := henriktest.Match("m1", 13, 8,
		henriktest.Player{PUUID: "a", Team: "Red", Score: 10},
		henriktest.Player{PUUID: "a", Team: "Red", Score: 50},
		henriktest.Player{PUUID: "b", Team: "Blue", Score: 20},
	)
	_, roster, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "b", roster[0].PlayerID)
	assert.Equal(t, 10, roster[1].CombatScore)
}
