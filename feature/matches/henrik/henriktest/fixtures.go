// Package henriktest builds raw match records for tests.
package henriktest

import (
	"encoding/json"

	"valortracker/feature/matches/henrik"
)

// Player describes one roster line.
type Player struct {
	PUUID  string
	Team   string
	Score  int
	Kills  int
	Deaths int
}

// Match builds a complete, valid record with the given round counts.
func Match(id string, red, blue int, players ...Player) henrik.RawMatch {
	mp := "Ascent"
	start := int64(1700000000)
	length := int64(2_100_000)
	rounds := red + blue

	all := make([]henrik.RawPlayer, 0, len(players))
	for _, p := range players {
		puuid, team := p.PUUID, p.Team
		score, kills, deaths := p.Score, p.Kills, p.Deaths
		assists, head, body, leg := 4, 10, 20, 5
		dmg, taken := 3000, 2500
		all = append(all, henrik.RawPlayer{
			PUUID:              &puuid,
			Name:               "name-" + puuid,
			Tag:                "0001",
			Team:               &team,
			Character:          "Jett",
			CurrentTierPatched: "Gold 2",
			Stats: &henrik.RawStats{
				Score:     &score,
				Kills:     &kills,
				Deaths:    &deaths,
				Assists:   &assists,
				Headshots: &head,
				Bodyshots: &body,
				Legshots:  &leg,
			},
			DamageMade:     &dmg,
			DamageReceived: &taken,
		})
	}

	m := henrik.RawMatch{
		Metadata: &henrik.RawMetadata{
			MatchID:          &id,
			Map:              &mp,
			GameStart:        &start,
			GameStartPatched: "Tuesday, November 14, 2023 10:13 PM",
			GameLength:       &length,
			RoundsPlayed:     &rounds,
			Mode:             "Competitive",
			Region:           "eu",
		},
		Players: &henrik.RawPlayers{AllPlayers: all},
		Teams: &henrik.RawTeams{
			Red:  &henrik.RawTeam{RoundsWon: &red, RoundsLost: &blue},
			Blue: &henrik.RawTeam{RoundsWon: &blue, RoundsLost: &red},
		},
	}
	m.Raw, _ = json.Marshal(m)
	return m
}

// Roster is a two player roster with self on red and an opponent on blue.
func Roster(self, opponent string) []Player {
	return []Player{
		{PUUID: self, Team: "Red", Score: 300, Kills: 20, Deaths: 10},
		{PUUID: opponent, Team: "Blue", Score: 200, Kills: 10, Deaths: 20},
	}
}

// Broken returns a record without teams, which fails normalization.
func Broken(id string) henrik.RawMatch {
	m := Match(id, 13, 8, Roster("x", "y")...)
	m.Teams = nil
	return m
}
