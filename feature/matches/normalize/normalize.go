package normalize

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/models"
)

// Normalize converts one raw remote record into a Match and its roster,
// ordered by position. It is pure: the same input always yields the same output.
func Normalize(raw henrik.RawMatch) (*models.Match, []models.Participation, error) {
	id := raw.ID()
	missing := func(field string) error {
		return &models.NormalizationError{MatchID: id, Field: field}
	}

	meta := raw.Metadata
	if meta == nil {
		return nil, nil, missing("metadata")
	}
	if id == "" {
		return nil, nil, missing("metadata.matchid")
	}
	if meta.Map == nil {
		return nil, nil, missing("metadata.map")
	}
	if meta.GameStart == nil {
		return nil, nil, missing("metadata.game_start")
	}
	if meta.GameLength == nil {
		return nil, nil, missing("metadata.game_length")
	}
	if raw.Teams == nil || raw.Teams.Red == nil || raw.Teams.Red.RoundsWon == nil {
		return nil, nil, missing("teams.red.rounds_won")
	}
	if raw.Teams.Blue == nil || raw.Teams.Blue.RoundsWon == nil {
		return nil, nil, missing("teams.blue.rounds_won")
	}
	if raw.Players == nil || len(raw.Players.AllPlayers) == 0 {
		return nil, nil, missing("players.all_players")
	}

	red, blue := *raw.Teams.Red.RoundsWon, *raw.Teams.Blue.RoundsWon
	rounds := red + blue
	if meta.RoundsPlayed != nil {
		rounds = *meta.RoundsPlayed
	}

	match := &models.Match{
		ID:               id,
		MapName:          *meta.Map,
		StartTime:        time.Unix(*meta.GameStart, 0).UTC(),
		StartTimePatched: meta.GameStartPatched,
		DurationMS:       *meta.GameLength,
		RedRounds:        red,
		BlueRounds:       blue,
		WinningTeam:      winningTeam(red, blue),
		RoundsPlayed:     rounds,
		Region:           meta.Region,
		Mode:             meta.Mode,
	}

	roster := make([]models.Participation, 0, len(raw.Players.AllPlayers))
	seen := make(map[string]struct{}, len(raw.Players.AllPlayers))
	for i, p := range raw.Players.AllPlayers {
		part, err := participation(id, i, p, red, blue)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := seen[part.PlayerID]; dup {
			continue
		}
		seen[part.PlayerID] = struct{}{}
		roster = append(roster, part)
	}

	rank(roster)
	return match, roster, nil
}

func participation(matchID string, i int, p henrik.RawPlayer, red, blue int) (models.Participation, error) {
	missing := func(field string) error {
		return &models.NormalizationError{MatchID: matchID, Field: fmt.Sprintf("players.all_players[%d].%s", i, field)}
	}

	if p.PUUID == nil || *p.PUUID == "" {
		return models.Participation{}, missing("puuid")
	}
	if p.Team == nil {
		return models.Participation{}, missing("team")
	}
	team, own, other, ok := side(*p.Team, red, blue)
	if !ok {
		return models.Participation{}, missing("team")
	}

	s := p.Stats
	if s == nil {
		return models.Participation{}, missing("stats")
	}
	fields := []struct {
		name string
		v    *int
	}{
		{"stats.score", s.Score},
		{"stats.kills", s.Kills},
		{"stats.deaths", s.Deaths},
		{"stats.assists", s.Assists},
		{"stats.headshots", s.Headshots},
		{"stats.bodyshots", s.Bodyshots},
		{"stats.legshots", s.Legshots},
	}
	for _, f := range fields {
		if f.v == nil {
			return models.Participation{}, missing(f.name)
		}
	}

	return models.Participation{
		MatchID:     matchID,
		PlayerID:    *p.PUUID,
		Name:        p.Name,
		Tag:         p.Tag,
		Team:        team,
		AgentName:   p.Character,
		AgentImage:  p.Assets.Agent.Small,
		RankTier:    p.CurrentTierPatched,
		Kills:       *s.Kills,
		Deaths:      *s.Deaths,
		Assists:     *s.Assists,
		CombatScore: *s.Score,
		Headshots:   *s.Headshots,
		OtherShots:  *s.Bodyshots + *s.Legshots,
		DamageDealt: deref(p.DamageMade),
		DamageTaken: deref(p.DamageReceived),
		RoundsWon:   own,
		RoundsLost:  other,
		Result:      result(own, other),
	}, nil
}

// rank sorts by descending combat score, keeping source order on ties, and
// assigns 1-based positions.
func rank(roster []models.Participation) {
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].CombatScore > roster[j].CombatScore
	})
	for i := range roster {
		roster[i].Position = i + 1
	}
}

func side(team string, red, blue int) (string, int, int, bool) {
	switch strings.ToLower(team) {
	case "red":
		return models.TeamRed, red, blue, true
	case "blue":
		return models.TeamBlue, blue, red, true
	default:
		return "", 0, 0, false
	}
}

func result(own, other int) string {
	switch {
	case own > other:
		return models.ResultWin
	case own < other:
		return models.ResultLose
	default:
		return models.ResultDraw
	}
}

func winningTeam(red, blue int) string {
	switch {
	case red > blue:
		return models.TeamRed
	case blue > red:
		return models.TeamBlue
	default:
		return models.TeamDraw
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
