package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_02_01_000000_create_players_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
						name VARCHAR(150) NOT NULL,
						position VARCHAR(20),
						rating DOUBLE PRECISION DEFAULT 1000,
						matches_played INTEGER DEFAULT 0,
						wins INTEGER DEFAULT 0,
						losses INTEGER DEFAULT 0,
						draws INTEGER DEFAULT 0,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_players_rating ON players(rating DESC);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
		{
			Name: "2025_02_02_000000_create_venues_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS venues (
						id SERIAL PRIMARY KEY,
						name VARCHAR(100) NOT NULL,
						location VARCHAR(255) NOT NULL,
						format VARCHAR(10) NOT NULL,
						surface VARCHAR(50),
						ownership VARCHAR(10),
						match_cost DOUBLE PRECISION DEFAULT 0,
						description TEXT,
						available BOOLEAN DEFAULT true,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_venues_deleted_at ON venues(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_venues_format ON venues(format);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS venues CASCADE").Error
			},
		},
		{
			Name: "2025_02_03_000000_create_teams_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id SERIAL PRIMARY KEY,
						name VARCHAR(100) NOT NULL,
						captain_id BIGINT NOT NULL REFERENCES players(id),
						kind VARCHAR(10) NOT NULL,
						active BOOLEAN DEFAULT true,
						description TEXT,
						match_id INTEGER NULL,
						matches_played INTEGER DEFAULT 0,
						wins INTEGER DEFAULT 0,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_teams_captain_id ON teams(captain_id);
					CREATE INDEX IF NOT EXISTS idx_teams_match_id ON teams(match_id);
					CREATE INDEX IF NOT EXISTS idx_teams_deleted_at ON teams(deleted_at);

					CREATE TABLE IF NOT EXISTS team_members (
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						PRIMARY KEY (team_id, player_id)
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS team_members CASCADE;
					DROP TABLE IF EXISTS teams CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_02_04_000000_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id SERIAL PRIMARY KEY,
						start_time TIMESTAMP NOT NULL,
						enrollment_deadline TIMESTAMP NULL,
						venue_id INTEGER NOT NULL REFERENCES venues(id),
						format VARCHAR(10) NOT NULL,
						level VARCHAR(20),
						mode VARCHAR(15) DEFAULT 'FRIENDLY',
						capacity INTEGER NOT NULL,
						cost DOUBLE PRECISION DEFAULT 0,
						payment_method VARCHAR(10) DEFAULT 'FREE',
						creator_id BIGINT NOT NULL REFERENCES players(id),
						home_team_id INTEGER NULL REFERENCES teams(id),
						away_team_id INTEGER NULL REFERENCES teams(id),
						state VARCHAR(10) DEFAULT 'SCHEDULED',
						rating_applied BOOLEAN DEFAULT false,
						comments TEXT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_matches_venue_id ON matches(venue_id);
					CREATE INDEX IF NOT EXISTS idx_matches_creator_id ON matches(creator_id);
					CREATE INDEX IF NOT EXISTS idx_matches_state ON matches(state);
					CREATE INDEX IF NOT EXISTS idx_matches_start_time ON matches(start_time);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);

					ALTER TABLE teams
						ADD CONSTRAINT fk_teams_match
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE;

					CREATE TABLE IF NOT EXISTS match_players (
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						PRIMARY KEY (match_id, player_id)
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS match_players CASCADE;
					ALTER TABLE teams DROP CONSTRAINT IF EXISTS fk_teams_match;
					DROP TABLE IF EXISTS matches CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_02_05_000000_create_enrollments_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS enrollments (
						id SERIAL PRIMARY KEY,
						kind VARCHAR(10) NOT NULL,
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						state VARCHAR(10) DEFAULT 'PENDING',
						player_id BIGINT NULL REFERENCES players(id) ON DELETE CASCADE,
						team_id INTEGER NULL REFERENCES teams(id) ON DELETE CASCADE,
						payment_confirmed BOOLEAN DEFAULT false,
						comments TEXT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_enrollments_match_id ON enrollments(match_id);
					CREATE INDEX IF NOT EXISTS idx_enrollments_player_id ON enrollments(player_id);
					CREATE INDEX IF NOT EXISTS idx_enrollments_team_id ON enrollments(team_id);
					CREATE INDEX IF NOT EXISTS idx_enrollments_deleted_at ON enrollments(deleted_at);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_enrollments_pending_player
						ON enrollments(match_id, player_id)
						WHERE state = 'PENDING' AND kind = 'PLAYER' AND deleted_at IS NULL;
					CREATE UNIQUE INDEX IF NOT EXISTS idx_enrollments_pending_team
						ON enrollments(match_id, team_id)
						WHERE state = 'PENDING' AND kind = 'TEAM' AND deleted_at IS NULL;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS enrollments CASCADE").Error
			},
		},
		{
			Name: "2025_02_06_000000_create_results_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS results (
						id SERIAL PRIMARY KEY,
						match_id INTEGER UNIQUE NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						home_goals INTEGER NOT NULL DEFAULT 0,
						away_goals INTEGER NOT NULL DEFAULT 0,
						recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS results CASCADE").Error
			},
		},
		{
			Name: "2025_02_07_000000_create_rating_history_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS rating_history (
						id SERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						rating_before DOUBLE PRECISION NOT NULL,
						rating_after DOUBLE PRECISION NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_rating_history_player_id ON rating_history(player_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_match_id ON rating_history(match_id);
					CREATE INDEX IF NOT EXISTS idx_rating_history_deleted_at ON rating_history(deleted_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS rating_history CASCADE").Error
			},
		},
		{
			Name: "2025_02_08_000000_create_team_invitations_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS team_invitations (
						id SERIAL PRIMARY KEY,
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						invited_by_id BIGINT NOT NULL REFERENCES players(id),
						invitee_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						state VARCHAR(10) DEFAULT 'PENDING',
						responded_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_team_invitations_team_id ON team_invitations(team_id);
					CREATE INDEX IF NOT EXISTS idx_team_invitations_invitee_id ON team_invitations(invitee_id);
					CREATE INDEX IF NOT EXISTS idx_team_invitations_deleted_at ON team_invitations(deleted_at);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_team_invitations_pending
						ON team_invitations(team_id, invitee_id)
						WHERE state = 'PENDING' AND deleted_at IS NULL;
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS team_invitations CASCADE").Error
			},
		},
	}
}
