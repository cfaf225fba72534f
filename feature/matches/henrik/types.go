package henrik

import "encoding/json"

// PageRequest addresses one page of a player's match history.
type PageRequest struct {
	PlayerID string
	Region   string
	Offset   int
	Size     int
}

// RawMatch is one match record as returned by the API. Pointer fields are
// required by the normalizer; nil means the provider omitted them.
type RawMatch struct {
	Metadata *RawMetadata `json:"metadata"`
	Players  *RawPlayers  `json:"players"`
	Teams    *RawTeams    `json:"teams"`

	// Raw is the undecoded record, kept for archiving.
	Raw json.RawMessage `json:"-"`
}

// ID returns the remote match id, or "" when the record carries none.
func (m RawMatch) ID() string {
	if m.Metadata == nil || m.Metadata.MatchID == nil {
		return ""
	}
	return *m.Metadata.MatchID
}

type RawMetadata struct {
	MatchID          *string `json:"matchid"`
	Map              *string `json:"map"`
	GameStart        *int64  `json:"game_start"`
	GameStartPatched string  `json:"game_start_patched"`
	GameLength       *int64  `json:"game_length"`
	RoundsPlayed     *int    `json:"rounds_played"`
	Mode             string  `json:"mode"`
	Region           string  `json:"region"`
}

type RawPlayers struct {
	AllPlayers []RawPlayer `json:"all_players"`
}

type RawPlayer struct {
	PUUID              *string   `json:"puuid"`
	Name               string    `json:"name"`
	Tag                string    `json:"tag"`
	Team               *string   `json:"team"`
	Character          string    `json:"character"`
	CurrentTierPatched string    `json:"currenttier_patched"`
	Assets             RawAssets `json:"assets"`
	Stats              *RawStats `json:"stats"`
	DamageMade         *int      `json:"damage_made"`
	DamageReceived     *int      `json:"damage_received"`
}

type RawAssets struct {
	Agent struct {
		Small string `json:"small"`
	} `json:"agent"`
}

type RawStats struct {
	Score     *int `json:"score"`
	Kills     *int `json:"kills"`
	Deaths    *int `json:"deaths"`
	Assists   *int `json:"assists"`
	Bodyshots *int `json:"bodyshots"`
	Headshots *int `json:"headshots"`
	Legshots  *int `json:"legshots"`
}

type RawTeams struct {
	Red  *RawTeam `json:"red"`
	Blue *RawTeam `json:"blue"`
}

type RawTeam struct {
	HasWon     *bool `json:"has_won"`
	RoundsWon  *int  `json:"rounds_won"`
	RoundsLost *int  `json:"rounds_lost"`
}

// Account is the identity returned by the account lookup.
type Account struct {
	PUUID        string `json:"puuid"`
	Region       string `json:"region"`
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	AccountLevel int    `json:"account_level"`
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}
