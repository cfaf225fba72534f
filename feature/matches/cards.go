package matches

import (
	"fmt"
	"time"

	"valortracker/core/utils"
	"valortracker/feature/matches/models"
)

// Card is one entry of a player's match history as shown to clients.
type Card struct {
	MatchID          string    `json:"match_id"`
	Map              string    `json:"map"`
	Mode             string    `json:"mode"`
	StartTime        time.Time `json:"start_time"`
	StartTimePatched string    `json:"start_time_patched"`
	Agent            string    `json:"agent"`
	AgentImage       string    `json:"agent_image"`
	RankTier         string    `json:"rank_tier"`
	Team             string    `json:"team"`
	Result           string    `json:"result"`
	Score            string    `json:"score"`
	RoundsWon        int       `json:"rounds_won"`
	RoundsLost       int       `json:"rounds_lost"`
	Kills            int       `json:"kills"`
	Deaths           int       `json:"deaths"`
	Assists          int       `json:"assists"`
	KDA              string    `json:"kda"`
	KDRatio          float64   `json:"kd_ratio"`
	ADR              int       `json:"adr"`
	ACS              int       `json:"acs"`
	HSPercent        int       `json:"hs_percent"`
	Position         int       `json:"position"`
	PositionLabel    string    `json:"position_label"`
}

// Line is one roster entry of a scoreboard.
type Line struct {
	PlayerID      string  `json:"puuid"`
	Name          string  `json:"name"`
	Tag           string  `json:"tag"`
	Team          string  `json:"team"`
	Agent         string  `json:"agent"`
	AgentImage    string  `json:"agent_image"`
	RankTier      string  `json:"rank_tier"`
	Result        string  `json:"result"`
	Kills         int     `json:"kills"`
	Deaths        int     `json:"deaths"`
	Assists       int     `json:"assists"`
	KDA           string  `json:"kda"`
	KDRatio       float64 `json:"kd_ratio"`
	ADR           int     `json:"adr"`
	ACS           int     `json:"acs"`
	HSPercent     int     `json:"hs_percent"`
	DamageDealt   int     `json:"damage_dealt"`
	DamageTaken   int     `json:"damage_taken"`
	Position      int     `json:"position"`
	PositionLabel string  `json:"position_label"`
}

// Scoreboard is a match with its full roster ordered by position.
type Scoreboard struct {
	Match  models.Match `json:"match"`
	Roster []Line       `json:"roster"`
}

func newCard(p models.Participation) Card {
	m := models.Match{}
	if p.Match != nil {
		m = *p.Match
	}
	return Card{
		MatchID:          p.MatchID,
		Map:              m.MapName,
		Mode:             m.Mode,
		StartTime:        m.StartTime,
		StartTimePatched: m.StartTimePatched,
		Agent:            p.AgentName,
		AgentImage:       p.AgentImage,
		RankTier:         p.RankTier,
		Team:             p.Team,
		Result:           p.Result,
		Score:            fmt.Sprintf("%d - %d", p.RoundsWon, p.RoundsLost),
		RoundsWon:        p.RoundsWon,
		RoundsLost:       p.RoundsLost,
		Kills:            p.Kills,
		Deaths:           p.Deaths,
		Assists:          p.Assists,
		KDA:              kda(p),
		KDRatio:          kdRatio(p),
		ADR:              perRound(p.DamageDealt, m.RoundsPlayed),
		ACS:              perRound(p.CombatScore, m.RoundsPlayed),
		HSPercent:        hsPercent(p),
		Position:         p.Position,
		PositionLabel:    PositionLabel(p.Position),
	}
}

func newLine(p models.Participation, rounds int) Line {
	return Line{
		PlayerID:      p.PlayerID,
		Name:          p.Name,
		Tag:           p.Tag,
		Team:          p.Team,
		Agent:         p.AgentName,
		AgentImage:    p.AgentImage,
		RankTier:      p.RankTier,
		Result:        p.Result,
		Kills:         p.Kills,
		Deaths:        p.Deaths,
		Assists:       p.Assists,
		KDA:           kda(p),
		KDRatio:       kdRatio(p),
		ADR:           perRound(p.DamageDealt, rounds),
		ACS:           perRound(p.CombatScore, rounds),
		HSPercent:     hsPercent(p),
		DamageDealt:   p.DamageDealt,
		DamageTaken:   p.DamageTaken,
		Position:      p.Position,
		PositionLabel: PositionLabel(p.Position),
	}
}

// PositionLabel renders a 1-based roster position.
func PositionLabel(pos int) string {
	switch pos {
	case 1:
		return "MVP"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", pos)
	}
}

func kda(p models.Participation) string {
	return fmt.Sprintf("%d/%d/%d", p.Kills, p.Deaths, p.Assists)
}

func kdRatio(p models.Participation) float64 {
	return utils.Round(utils.Ratio(float64(p.Kills), float64(p.Deaths)), 1)
}

func perRound(v, rounds int) int {
	if rounds <= 0 {
		return 0
	}
	return int(utils.Round(float64(v)/float64(rounds), 0))
}

func hsPercent(p models.Participation) int {
	shots := p.Headshots + p.OtherShots
	if shots == 0 {
		return 0
	}
	return int(utils.Round(float64(p.Headshots)/float64(shots)*100, 0))
}
