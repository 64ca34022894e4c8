package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"
	coreUtils "core/utils"

	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateTestData seeds users/players, venues, two permanent teams, a mix of
// upcoming and settled matches, and the rating history that goes with them.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	players, err := f.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	venues, err := f.generateVenues()
	if err != nil {
		return fmt.Errorf("failed to generate venues: %w", err)
	}

	teams, err := f.generateTeams(players)
	if err != nil {
		return fmt.Errorf("failed to generate teams: %w", err)
	}

	upcoming, err := f.generateUpcomingMatches(players, venues, teams)
	if err != nil {
		return fmt.Errorf("failed to generate upcoming matches: %w", err)
	}

	settled, err := f.generateSettledMatches(players, venues, teams)
	if err != nil {
		return fmt.Errorf("failed to generate settled matches: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	log.Printf("Created %d players, %d venues, %d teams, %d upcoming and %d settled matches",
		len(players), len(venues), len(teams), upcoming, settled)
	return nil
}

func (f *Fixtures) generateUsers() ([]models.Player, error) {
	profiles := []struct {
		username string
		position string
	}{
		{"alvaro", models.PositionGoalkeeper},
		{"marta", models.PositionDefender},
		{"javier", models.PositionDefender},
		{"lucia", models.PositionMidfielder},
		{"diego", models.PositionMidfielder},
		{"carmen", models.PositionForward},
		{"pablo", models.PositionForward},
		{"sara", models.PositionGoalkeeper},
		{"hugo", models.PositionDefender},
		{"elena", models.PositionMidfielder},
		{"mario", models.PositionForward},
		{"nerea", models.PositionDefender},
	}

	var players []models.Player

	for i, profile := range profiles {
		hashedPassword, err := authUtils.HashPassword("password123")
		if err != nil {
			return nil, err
		}

		userID := uint(i + 1) // #nosec G115 -- Force IDs 1, 2, 3, ...

		user := authModels.User{
			ID:       userID,
			Email:    fmt.Sprintf("%s@futmatch.es", profile.username),
			Username: profile.username,
			Password: hashedPassword,
			Enabled:  true,
			Roles:    authModels.GetDefaultRoles(),
		}
		if i == 0 {
			user.Roles = append(user.Roles, authModels.RoleAdmin)
		}

		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}

		player := models.Player{
			ID:       userID,
			Name:     profile.username,
			Position: profile.position,
			Rating:   models.DefaultRating,
		}

		if err := f.db.Create(&player).Error; err != nil {
			return nil, err
		}

		players = append(players, player)
		log.Printf("Created user: %s (ID: %d) -> Player (%s)", profile.username, userID, profile.position)
	}

	return players, nil
}

func (f *Fixtures) generateVenues() ([]models.Venue, error) {
	venues := []models.Venue{
		{
			Name:      "Polideportivo Norte",
			Location:  "Calle del Estadio 12",
			Format:    models.FormatFutsal,
			Surface:   "parquet",
			Ownership: models.VenuePublic,
			MatchCost: 0,
			Available: true,
		},
		{
			Name:      "Ciudad Deportiva Sur",
			Location:  "Avenida del Parque 3",
			Format:    models.FormatSeven,
			Surface:   "artificial turf",
			Ownership: models.VenuePrivate,
			MatchCost: 40,
			Available: true,
		},
		{
			Name:      "Campo Municipal Este",
			Location:  "Paseo de la Ribera 45",
			Format:    models.FormatEleven,
			Surface:   "grass",
			Ownership: models.VenuePublic,
			MatchCost: 0,
			Available: true,
		},
		{
			Name:      "Pista Cubierta Oeste",
			Location:  "Plaza Mayor 8",
			Format:    models.FormatFutsal,
			Surface:   "concrete",
			Ownership: models.VenuePublic,
			MatchCost: 0,
			Available: false,
		},
	}

	for i := range venues {
		if err := f.db.Create(&venues[i]).Error; err != nil {
			return nil, err
		}
		log.Printf("Created venue: %s (ID: %d)", venues[i].Name, venues[i].ID)
	}

	return venues, nil
}

// generateTeams creates two permanent five-a-side clubs from the seeded
// players. Players 1-5 form the first squad, 6-10 the second; the last two
// players stay unaffiliated.
func (f *Fixtures) generateTeams(players []models.Player) ([]models.Team, error) {
	defs := []struct {
		name        string
		description string
		memberStart int
	}{
		{"Los Galácticos", "Five-a-side regulars, Tuesday nights", 0},
		{"Atlético Barrio", "Neighbourhood club, all levels welcome", 5},
	}

	var teams []models.Team

	for _, def := range defs {
		members := players[def.memberStart : def.memberStart+5]

		team := models.Team{
			Name:        def.name,
			CaptainID:   members[0].ID,
			Kind:        models.TeamPermanent,
			Active:      true,
			Description: def.description,
		}

		if err := f.db.Create(&team).Error; err != nil {
			return nil, err
		}

		if err := f.db.Model(&team).Association("Members").Append(&members); err != nil {
			return nil, err
		}

		teams = append(teams, team)
		log.Printf("Created team: %s (ID: %d, captain: %d)", team.Name, team.ID, team.CaptainID)
	}

	return teams, nil
}

// generateUpcomingMatches seeds two open matches with a few enrollments and
// one team challenge still waiting for a rival.
func (f *Fixtures) generateUpcomingMatches(players []models.Player, venues []models.Venue, teams []models.Team) (int, error) {
	now := time.Now()
	created := 0

	// Open futsal match created by the first unaffiliated player.
	creator := players[10]
	open := models.Match{
		StartTime:     now.AddDate(0, 0, 3).Truncate(time.Hour),
		VenueID:       venues[0].ID,
		Format:        models.FormatFutsal,
		Level:         models.LevelIntermediate,
		Mode:          models.ModeFriendly,
		Capacity:      10,
		PaymentMethod: models.PaymentFree,
		CreatorID:     creator.ID,
		State:         models.MatchScheduled,
	}
	if err := f.db.Create(&open).Error; err != nil {
		return created, err
	}
	if err := f.db.Model(&open).Association("Players").Append(&creator); err != nil {
		return created, err
	}
	created++

	// A couple of pending player enrollments on the open match; pending
	// requests occupy their roster slot.
	for _, p := range []models.Player{players[11], players[2]} {
		player := p
		enrollment := models.Enrollment{
			Kind:     models.EnrollmentPlayer,
			MatchID:  open.ID,
			State:    models.EnrollmentPending,
			PlayerID: &player.ID,
		}
		if err := f.db.Create(&enrollment).Error; err != nil {
			return created, err
		}
		if err := f.db.Model(&open).Association("Players").Append(&player); err != nil {
			return created, err
		}
	}

	// Paid F7 match with an explicit deadline.
	deadline := now.AddDate(0, 0, 5).Truncate(time.Hour)
	paid := models.Match{
		StartTime:          deadline.Add(6 * time.Hour),
		EnrollmentDeadline: &deadline,
		VenueID:            venues[1].ID,
		Format:             models.FormatSeven,
		Level:              models.LevelAdvanced,
		Mode:               models.ModeFriendly,
		Capacity:           14,
		Cost:               40,
		PaymentMethod:      models.PaymentBizum,
		CreatorID:          players[3].ID,
		State:              models.MatchScheduled,
	}
	if err := f.db.Create(&paid).Error; err != nil {
		return created, err
	}
	if err := f.db.Model(&paid).Association("Players").Append(&players[3]); err != nil {
		return created, err
	}
	created++

	// Team challenge by the first club, away slot still open.
	challenge := models.Match{
		StartTime:     now.AddDate(0, 0, 7).Truncate(time.Hour),
		VenueID:       venues[0].ID,
		Format:        models.FormatFutsal,
		Level:         models.LevelIntermediate,
		Mode:          models.ModeCompetitive,
		Capacity:      10,
		PaymentMethod: models.PaymentFree,
		CreatorID:     teams[0].CaptainID,
		HomeTeamID:    &teams[0].ID,
		State:         models.MatchScheduled,
	}
	if err := f.db.Create(&challenge).Error; err != nil {
		return created, err
	}
	roster := players[0:5]
	if err := f.db.Model(&challenge).Association("Players").Append(&roster); err != nil {
		return created, err
	}
	created++

	log.Printf("Created %d upcoming matches", created)
	return created, nil
}

// generateSettledMatches replays a short season of competitive challenges
// between the two clubs: results, counters and rating history are written the
// same way the settlement service writes them.
func (f *Fixtures) generateSettledMatches(players []models.Player, venues []models.Venue, teams []models.Team) (int, error) {
	now := time.Now()

	ratings := make(map[uint]float64, len(players))
	for _, p := range players {
		ratings[p.ID] = p.Rating
	}

	homeMembers := players[0:5]
	awayMembers := players[5:10]

	created := 0
	for i := 0; i < 6; i++ {
		weeksAgo := 6 - i
		startTime := now.AddDate(0, 0, -7*weeksAgo).Truncate(time.Hour)

		homeGoals := rand.Intn(6) // #nosec G404
		awayGoals := rand.Intn(6) // #nosec G404

		match := models.Match{
			StartTime:     startTime,
			VenueID:       venues[i%2].ID,
			Format:        models.FormatFutsal,
			Level:         models.LevelIntermediate,
			Mode:          models.ModeCompetitive,
			Capacity:      10,
			PaymentMethod: models.PaymentFree,
			CreatorID:     teams[0].CaptainID,
			HomeTeamID:    &teams[0].ID,
			AwayTeamID:    &teams[1].ID,
			State:         models.MatchFinished,
			RatingApplied: true,
			CreatedAt:     startTime.AddDate(0, 0, -3),
		}
		if err := f.db.Create(&match).Error; err != nil {
			return created, err
		}

		roster := players[0:10]
		if err := f.db.Model(&match).Association("Players").Append(&roster); err != nil {
			return created, err
		}

		result := models.Result{
			MatchID:    match.ID,
			HomeGoals:  homeGoals,
			AwayGoals:  awayGoals,
			RecordedAt: startTime.Add(2 * time.Hour),
		}
		if err := f.db.Create(&result).Error; err != nil {
			return created, err
		}

		homeAvg := averageRating(homeMembers, ratings)
		awayAvg := averageRating(awayMembers, ratings)

		homeScore := coreUtils.MatchScore(homeGoals, awayGoals)
		awayScore := coreUtils.MatchScore(awayGoals, homeGoals)
		homeExpected := coreUtils.ExpectedScore(homeAvg, awayAvg)
		awayExpected := coreUtils.ExpectedScore(awayAvg, homeAvg)
		homeDelta := coreUtils.RatingDelta(homeScore, homeExpected)
		awayDelta := coreUtils.RatingDelta(awayScore, awayExpected)

		var histories []models.RatingHistory
		for _, p := range homeMembers {
			histories = append(histories, models.RatingHistory{
				PlayerID:     p.ID,
				MatchID:      match.ID,
				RatingBefore: ratings[p.ID],
				RatingAfter:  ratings[p.ID] + homeDelta,
				CreatedAt:    result.RecordedAt,
			})
			ratings[p.ID] += homeDelta
		}
		for _, p := range awayMembers {
			histories = append(histories, models.RatingHistory{
				PlayerID:     p.ID,
				MatchID:      match.ID,
				RatingBefore: ratings[p.ID],
				RatingAfter:  ratings[p.ID] + awayDelta,
				CreatedAt:    result.RecordedAt,
			})
			ratings[p.ID] += awayDelta
		}
		if err := f.db.Create(&histories).Error; err != nil {
			return created, err
		}

		if err := f.bumpCounters(teams, homeMembers, awayMembers, homeGoals, awayGoals); err != nil {
			return created, err
		}

		created++
	}

	// Push the accumulated ratings back onto the players table.
	for id, rating := range ratings {
		if err := f.db.Model(&models.Player{}).Where("id = ?", id).
			UpdateColumn("rating", rating).Error; err != nil {
			return created, err
		}
	}

	log.Printf("Created %d settled matches", created)
	return created, nil
}

func (f *Fixtures) bumpCounters(teams []models.Team, homeMembers, awayMembers []models.Player, homeGoals, awayGoals int) error {
	for i, team := range teams[:2] {
		updates := map[string]interface{}{
			"matches_played": gorm.Expr("matches_played + 1"),
		}
		won := (i == 0 && homeGoals > awayGoals) || (i == 1 && awayGoals > homeGoals)
		if won {
			updates["wins"] = gorm.Expr("wins + 1")
		}
		if err := f.db.Model(&models.Team{}).Where("id = ?", team.ID).
			Updates(updates).Error; err != nil {
			return err
		}
	}

	bump := func(members []models.Player, column string) error {
		ids := make([]uint, 0, len(members))
		for _, p := range members {
			ids = append(ids, p.ID)
		}
		if err := f.db.Model(&models.Player{}).Where("id IN ?", ids).
			UpdateColumn("matches_played", gorm.Expr("matches_played + 1")).Error; err != nil {
			return err
		}
		return f.db.Model(&models.Player{}).Where("id IN ?", ids).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	}

	homeColumn, awayColumn := "draws", "draws"
	if homeGoals > awayGoals {
		homeColumn, awayColumn = "wins", "losses"
	} else if homeGoals < awayGoals {
		homeColumn, awayColumn = "losses", "wins"
	}

	if err := bump(homeMembers, homeColumn); err != nil {
		return err
	}
	return bump(awayMembers, awayColumn)
}

func averageRating(members []models.Player, ratings map[uint]float64) float64 {
	if len(members) == 0 {
		return models.DefaultRating
	}
	var sum float64
	for _, p := range members {
		sum += ratings[p.ID]
	}
	return sum / float64(len(members))
}

// ClearAllData removes all fixture data
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	// Delete in correct order due to foreign key constraints
	tables := []interface{}{
		&models.RatingHistory{},
		&models.Result{},
		&models.Enrollment{},
		&models.TeamInvitation{},
		&models.Match{},
		&models.Team{},
		&models.Venue{},
		&models.Player{},
		&authModels.RefreshToken{},
		&authModels.User{},
	}

	for _, table := range tables {
		if err := f.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	f.db.Exec("DELETE FROM match_players")
	f.db.Exec("DELETE FROM team_members")

	// Reset auto-increment sequences to start from 1
	sequences := []string{
		"ALTER SEQUENCE users_id_seq RESTART WITH 1",
		"ALTER SEQUENCE venues_id_seq RESTART WITH 1",
		"ALTER SEQUENCE teams_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matches_id_seq RESTART WITH 1",
		"ALTER SEQUENCE enrollments_id_seq RESTART WITH 1",
		"ALTER SEQUENCE results_id_seq RESTART WITH 1",
		"ALTER SEQUENCE rating_history_id_seq RESTART WITH 1",
		"ALTER SEQUENCE team_invitations_id_seq RESTART WITH 1",
		"ALTER SEQUENCE refresh_tokens_id_seq RESTART WITH 1",
	}

	for _, seq := range sequences {
		f.db.Exec(seq)
	}

	log.Println("All fixture data cleared!")
	return nil
}
