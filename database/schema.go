package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
    seq INT NOT NULL AUTO_INCREMENT,
    submitter_id VARCHAR(256) NOT NULL,
    image LONGBLOB NOT NULL,
    location VARCHAR(512) NOT NULL,
    severity VARCHAR(16) NOT NULL,
    status VARCHAR(16) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (seq),
    INDEX idx_created_at (created_at),
    INDEX idx_severity (severity),
    INDEX idx_status (status)
);
`

// InitSchema creates the reports table if it does not exist yet.
func InitSchema(db *sql.DB) error {
	log.Info("Initializing database schema...")

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Info("Database schema initialized successfully")
	return nil
}
