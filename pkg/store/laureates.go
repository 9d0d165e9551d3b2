package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xhad/nobel/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type LaureateStoreConfig struct {
	ConnString string
	TableName  string
}

type LaureateStore struct {
	config LaureateStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(ctx context.Context, config LaureateStoreConfig) (*LaureateStore, error) {
	if config.TableName == "" {
		config.TableName = "laureates"
	}
	if !tableNamePattern.MatchString(config.TableName) {
		return nil, fmt.Errorf("invalid table name %q", config.TableName)
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ls := &LaureateStore{
		config: config,
		pool:   pool,
	}

	if err := ls.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return ls, nil
}

func (ls *LaureateStore) initialize(ctx context.Context) error {
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			known_name TEXT,
			award_year INTEGER,
			category TEXT,
			affiliation TEXT,
			raw JSONB NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, ls.config.TableName)

	if _, err := ls.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_award_year_idx ON %s (award_year)`,
		ls.config.TableName, ls.config.TableName)

	if _, err := ls.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Store upserts the laureates in a single transaction.
func (ls *LaureateStore) Store(ctx context.Context, laureates []models.Laureate) error {
	tx, err := ls.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, known_name, award_year, category, affiliation, raw, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			known_name = EXCLUDED.known_name,
			award_year = EXCLUDED.award_year,
			category = EXCLUDED.category,
			affiliation = EXCLUDED.affiliation,
			raw = EXCLUDED.raw,
			fetched_at = EXCLUDED.fetched_at`,
		ls.config.TableName)

	for _, l := range laureates {
		row := toRow(l)
		raw, err := rawJSON(l)
		if err != nil {
			return fmt.Errorf("failed to encode laureate %s: %w", l.ID, err)
		}

		if _, err := tx.Exec(ctx, stmt,
			row.id,
			row.knownName,
			row.awardYear,
			row.category,
			row.affiliation,
			raw,
		); err != nil {
			return fmt.Errorf("failed to insert laureate %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ByYear returns the stored laureates whose first prize was awarded in year.
func (ls *LaureateStore) ByYear(ctx context.Context, year int) ([]models.Laureate, error) {
	query := fmt.Sprintf(`
		SELECT raw
		FROM %s
		WHERE award_year = $1
		ORDER BY id`,
		ls.config.TableName)

	rows, err := ls.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query laureates: %w", err)
	}
	defer rows.Close()

	var laureates []models.Laureate
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var l models.Laureate
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("failed to decode laureate: %w", err)
		}
		laureates = append(laureates, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return laureates, nil
}

func (ls *LaureateStore) Close() {
	if ls.pool != nil {
		ls.pool.Close()
	}
}

type laureateRow struct {
	id          string
	knownName   *string
	awardYear   *int
	category    *string
	affiliation *string
}

func toRow(l models.Laureate) laureateRow {
	row := laureateRow{id: sanitizeUTF8(l.ID)}
	if l.KnownName != nil && l.KnownName.En != "" {
		name := sanitizeUTF8(l.KnownName.En)
		row.knownName = &name
	}
	if len(l.NobelPrizes) == 0 {
		return row
	}

	prize := l.NobelPrizes[0]
	if year, err := strconv.Atoi(prize.AwardYear); err == nil {
		row.awardYear = &year
	}
	if prize.Category != nil && prize.Category.En != "" {
		category := sanitizeUTF8(prize.Category.En)
		row.category = &category
	}
	if len(prize.Affiliations) > 0 && prize.Affiliations[0].Name != nil {
		affiliation := sanitizeUTF8(prize.Affiliations[0].Name.En)
		row.affiliation = &affiliation
	}
	return row
}

func rawJSON(l models.Laureate) ([]byte, error) {
	raw := l.Raw
	if !utf8.Valid(raw) {
		raw = []byte(strings.ToValidUTF8(string(raw), ""))
	}
	if len(raw) > 0 && json.Valid(raw) {
		return raw, nil
	}
	return json.Marshal(l)
}

func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
