package models

import "time"

// Result of a participation, derived from the team round counts.
const (
	ResultWin  = "win"
	ResultLose = "lose"
	ResultDraw = "draw"
)

// Team tags used by the remote source.
const (
	TeamRed  = "Red"
	TeamBlue = "Blue"
	TeamDraw = "Draw"
)

// Match is one completed game. Rows are immutable after creation.
type Match struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	MapName          string    `gorm:"size:64" json:"map_name"`
	StartTime        time.Time `gorm:"index" json:"start_time"`
	StartTimePatched string    `gorm:"size:64" json:"start_time_patched"`
	DurationMS       int64     `json:"duration_ms"`
	RedRounds        int       `json:"red_rounds"`
	BlueRounds       int       `json:"blue_rounds"`
	WinningTeam      string    `gorm:"size:16" json:"winning_team"`
	RoundsPlayed     int       `json:"rounds_played"`
	Region           string    `gorm:"size:16" json:"region"`
	Mode             string    `gorm:"size:32" json:"mode"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Match) TableName() string { return "matches" }

// Participation is one player's line in a match roster.
// Position and Result are computed from the full roster at insert time.
type Participation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MatchID      string `gorm:"size:64;not null;uniqueIndex:idx_match_player" json:"match_id"`
	PlayerID     string `gorm:"size:96;not null;uniqueIndex:idx_match_player;index" json:"player_id"`
	Match        *Match `gorm:"foreignKey:MatchID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Name         string `gorm:"size:64" json:"name"`
	Tag          string `gorm:"size:16" json:"tag"`
	Team         string `gorm:"size:16" json:"team"`
	AgentName    string `gorm:"size:32" json:"agent_name"`
	AgentImage   string `gorm:"size:255" json:"agent_image"`
	RankTier     string `gorm:"size:32" json:"rank_tier"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	CombatScore  int    `json:"combat_score"`
	Headshots    int    `json:"headshots"`
	OtherShots   int    `json:"other_shots"`
	DamageDealt  int    `json:"damage_dealt"`
	DamageTaken  int    `json:"damage_taken"`
	RoundsWon    int    `json:"rounds_won"`
	RoundsLost   int    `json:"rounds_lost"`
	Position     int    `json:"position"`
	Result       string `gorm:"size:8" json:"result"`
	Linked       bool   `gorm:"not null;default:false" json:"linked"`
}

func (Participation) TableName() string { return "participations" }

// Player is a remote account. Name and tag change when the player renames.
type Player struct {
	ID           string    `gorm:"primaryKey;size:96" json:"puuid"`
	Name         string    `gorm:"size:64;index:idx_player_name_tag" json:"name"`
	Tag          string    `gorm:"size:16;index:idx_player_name_tag" json:"tag"`
	Region       string    `gorm:"size:16" json:"region"`
	AccountLevel int       `json:"account_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Player) TableName() string { return "players" }

// Agent is one playable agent of the reference catalog.
type Agent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"size:64;uniqueIndex" json:"uuid"`
	Name        string    `gorm:"size:64;index" json:"name"`
	Role        string    `gorm:"size:32" json:"role"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:255" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Agent) TableName() string { return "agents" }

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Match{}, &Participation{}, &Player{}, &Agent{}}
}
