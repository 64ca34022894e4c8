package models

// VenueUsage is a venue row with the number of finished matches played there.
type VenueUsage struct {
	VenueID         uint   `json:"venue_id"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	FinishedMatches int64  `json:"finished_matches"`
}

// CommunityStats is the aggregate dashboard payload.
type CommunityStats struct {
	TotalPlayers      int64        `json:"total_players"`
	TotalMatches      int64        `json:"total_matches"`
	MatchesLast7Days  int64        `json:"matches_last_7_days"`
	TopRatedPlayers   []Player     `json:"top_rated_players"`
	MostActivePlayers []Player     `json:"most_active_players"`
	TopTeams          []Team       `json:"top_teams"`
	PopularVenues     []VenueUsage `json:"popular_venues"`
}
