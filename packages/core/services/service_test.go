package services

import (
	"testing"
	"time"

	"core/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testNow is the fixed reference instant every service test schedules around.
var testNow = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Player{},
		&models.Venue{},
		&models.Team{},
		&models.Match{},
		&models.Enrollment{},
		&models.Result{},
		&models.RatingHistory{},
		&models.TeamInvitation{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedPlayer(t *testing.T, db *gorm.DB, id uint, name string) models.Player {
	t.Helper()

	player := models.Player{
		ID:       id,
		Name:     name,
		Position: models.PositionMidfielder,
		Rating:   models.DefaultRating,
	}
	require.NoError(t, db.Create(&player).Error)
	return player
}

func seedPlayers(t *testing.T, db *gorm.DB, from, count uint) []models.Player {
	t.Helper()

	players := make([]models.Player, 0, count)
	for i := uint(0); i < count; i++ {
		players = append(players, seedPlayer(t, db, from+i, "player"))
	}
	return players
}

func seedVenue(t *testing.T, db *gorm.DB, format string) models.Venue {
	t.Helper()

	venue := models.Venue{
		Name:      "Test Venue",
		Location:  "Test Street 1",
		Format:    format,
		Available: true,
	}
	require.NoError(t, db.Create(&venue).Error)
	return venue
}

func seedPermanentTeam(t *testing.T, db *gorm.DB, name string, members []models.Player) models.Team {
	t.Helper()

	team := models.Team{
		Name:      name,
		CaptainID: members[0].ID,
		Kind:      models.TeamPermanent,
		Active:    true,
	}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Model(&team).Association("Members").Append(&members))
	return team
}

// seedOpenMatch creates a scheduled open match two days out with the creator
// already rostered.
func seedOpenMatch(t *testing.T, db *gorm.DB, creator models.Player, venue models.Venue, capacity int) models.Match {
	t.Helper()

	match := models.Match{
		StartTime:     testNow.Add(48 * time.Hour),
		VenueID:       venue.ID,
		Format:        venue.Format,
		Mode:          models.ModeFriendly,
		Capacity:      capacity,
		PaymentMethod: models.PaymentFree,
		CreatorID:     creator.ID,
		State:         models.MatchScheduled,
	}
	require.NoError(t, db.Create(&match).Error)
	require.NoError(t, db.Model(&match).Association("Players").Append(&creator))
	return match
}

// seedChallengeMatch creates a scheduled team challenge with the home squad
// rostered and the away slot open.
func seedChallengeMatch(t *testing.T, db *gorm.DB, home models.Team, venue models.Venue) models.Match {
	t.Helper()

	var members []models.Player
	require.NoError(t, db.Model(&home).Association("Members").Find(&members))

	match := models.Match{
		StartTime:     testNow.Add(48 * time.Hour),
		VenueID:       venue.ID,
		Format:        venue.Format,
		Mode:          models.ModeCompetitive,
		Capacity:      formatCapacity[venue.Format],
		PaymentMethod: models.PaymentFree,
		CreatorID:     home.CaptainID,
		HomeTeamID:    &home.ID,
		State:         models.MatchScheduled,
	}
	require.NoError(t, db.Create(&match).Error)
	require.NoError(t, db.Model(&match).Association("Players").Append(&members))
	return match
}

func rosterCount(t *testing.T, db *gorm.DB, matchID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Table("match_players").Where("match_id = ?", matchID).Count(&count).Error)
	return count
}
