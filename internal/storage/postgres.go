package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sentimentlab/reviewpulse/internal/models"
	"go.uber.org/zap"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("error encoding metadata: %v", err)
	}

	query := `
		INSERT INTO analyses (id, ts, review, label, confidence, normalized_score, sentiment, action_taken, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.ExecContext(ctx, query,
		record.ID,
		record.Timestamp,
		record.ReviewText,
		record.Label,
		record.Confidence,
		record.NormalizedScore,
		record.Sentiment,
		record.ActionCode,
		metadata,
	)
	if err != nil {
		return fmt.Errorf("error saving analysis: %v", err)
	}

	return nil
}

func (s *PostgresStorage) ListAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, ts, review, label, confidence, normalized_score, sentiment, action_taken, metadata
		FROM analyses
		ORDER BY ts DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying analyses: %v", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		record := &models.AnalysisRecord{}
		var actionCode string
		var metadata []byte
		err := rows.Scan(
			&record.ID,
			&record.Timestamp,
			&record.ReviewText,
			&record.Label,
			&record.Confidence,
			&record.NormalizedScore,
			&record.Sentiment,
			&actionCode,
			&metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning analysis: %v", err)
		}
		record.ActionCode = models.ActionCode(actionCode)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
				s.logger.Warn("Skipping undecodable metadata",
					zap.Error(err),
					zap.String("record_id", record.ID))
			}
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (s *PostgresStorage) CountByAction(ctx context.Context) (map[models.ActionCode]int64, error) {
	query := `
		SELECT action_taken, COUNT(*)
		FROM analyses
		GROUP BY action_taken`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error counting analyses: %v", err)
	}
	defer rows.Close()

	counts := make(map[models.ActionCode]int64)
	for rows.Next() {
		var actionCode string
		var count int64
		if err := rows.Scan(&actionCode, &count); err != nil {
			return nil, fmt.Errorf("error scanning count: %v", err)
		}
		counts[models.ActionCode(actionCode)] = count
	}

	return counts, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
