package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/elonfeng/aihub/pkg/source"
)

// ErrNotFound is returned when a content id does not exist.
var ErrNotFound = errors.New("content not found")

// ContentRecord is the insertion shape for catalog content. Premium flag
// and duration are decided at conversion time by the content provider,
// never derived later.
type ContentRecord struct {
	Title       string
	Description string
	Category    source.Category
	IsPremium   bool
	ImageURL    string
	Duration    string // empty = not applicable
	AuthorID    *int64
}

// Content is a persisted catalog entry.
type Content struct {
	ID          int64           `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Category    source.Category `db:"category" json:"category"`
	IsPremium   bool            `db:"is_premium" json:"isPremium"`
	ImageURL    string          `db:"image_url" json:"imageUrl"`
	ViewCount   int             `db:"view_count" json:"viewCount"`
	Duration    string          `db:"duration" json:"duration,omitempty"`
	AuthorID    *int64          `db:"author_id" json:"authorId,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// Topic is a trending topic shown alongside the catalog.
type Topic struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Icon         string `db:"icon" json:"icon"`
	ArticleCount int    `db:"article_count" json:"articleCount"`
}

// ListOpts controls content listing. An empty Category means all
// categories; a non-empty Search matches title or description.
type ListOpts struct {
	Category source.Category
	Search   string
}

// Store is the catalog persistence interface.
type Store interface {
	CreateContent(ctx context.Context, rec ContentRecord) (*Content, error)
	GetContent(ctx context.Context, id int64) (*Content, error)
	ListContent(ctx context.Context, opts ListOpts) ([]Content, error)
	IncrementViewCount(ctx context.Context, id int64) error
	ClearAllContent(ctx context.Context) error
	CountContent(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[source.Category]int, error)
	LatestCreatedAt(ctx context.Context) (time.Time, error)

	ListTopics(ctx context.Context) ([]Topic, error)
	CreateTopic(ctx context.Context, t Topic) (*Topic, error)

	Ping(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database, runs migrations and seeds the topic list
// on first use.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	var topicCount int
	if err := db.Get(&topicCount, "SELECT COUNT(*) FROM topics"); err != nil {
		db.Close()
		return nil, fmt.Errorf("count topics: %w", err)
	}
	if topicCount == 0 {
		for _, t := range seedTopics {
			if _, err := db.Exec(
				"INSERT INTO topics (name, icon, article_count) VALUES (?, ?, ?)",
				t.name, t.icon, t.articleCount); err != nil {
				db.Close()
				return nil, fmt.Errorf("seed topic %s: %w", t.name, err)
			}
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) CreateContent(ctx context.Context, rec ContentRecord) (*Content, error) {
	if !rec.Category.Valid() {
		return nil, fmt.Errorf("invalid category %q", rec.Category)
	}

	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO content (title, description, category, is_premium, image_url, view_count, duration, author_id, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)
	`, rec.Title, rec.Description, rec.Category, rec.IsPremium,
		rec.ImageURL, rec.Duration, rec.AuthorID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert content %q: %w", rec.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("content insert id: %w", err)
	}

	return &Content{
		ID:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Category:    rec.Category,
		IsPremium:   rec.IsPremium,
		ImageURL:    rec.ImageURL,
		Duration:    rec.Duration,
		AuthorID:    rec.AuthorID,
		CreatedAt:   createdAt,
	}, nil
}

func (s *SQLiteStore) GetContent(ctx context.Context, id int64) (*Content, error) {
	var c Content
	err := s.db.GetContext(ctx, &c, "SELECT * FROM content WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}
	return &c, nil
}

func (s *SQLiteStore) ListContent(ctx context.Context, opts ListOpts) ([]Content, error) {
	query := "SELECT * FROM content WHERE 1=1"
	var args []any

	if opts.Category != "" && opts.Category != "all" {
		query += " AND category = ?"
		args = append(args, opts.Category)
	}
	if opts.Search != "" {
		query += " AND (title LIKE ? OR description LIKE ?)"
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY created_at DESC, id DESC"

	var items []Content
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// IncrementViewCount bumps the view counter; it never decreases.
func (s *SQLiteStore) IncrementViewCount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE content SET view_count = view_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("increment view count %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearAllContent removes every catalog entry. AUTOINCREMENT sequence
// state survives, so cleared ids are never handed out again.
func (s *SQLiteStore) ClearAllContent(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM content"); err != nil {
		return fmt.Errorf("clear content: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CountContent(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM content"); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) CountByCategory(ctx context.Context) (map[source.Category]int, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT category, COUNT(*) AS cnt FROM content GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count content by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[source.Category]int)
	for rows.Next() {
		var cat string
		var cnt int
		if err := rows.Scan(&cat, &cnt); err != nil {
			return nil, err
		}
		counts[source.Category(cat)] = cnt
	}
	return counts, rows.Err()
}

// LatestCreatedAt returns the newest insertion time, or the zero time
// when the catalog is empty.
func (s *SQLiteStore) LatestCreatedAt(ctx context.Context) (time.Time, error) {
	var latest time.Time
	err := s.db.GetContext(ctx, &latest,
		"SELECT created_at FROM content ORDER BY created_at DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("latest content time: %w", err)
	}
	return latest, nil
}

func (s *SQLiteStore) ListTopics(ctx context.Context) ([]Topic, error) {
	var topics []Topic
	err := s.db.SelectContext(ctx, &topics,
		"SELECT * FROM topics ORDER BY article_count DESC")
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (s *SQLiteStore) CreateTopic(ctx context.Context, t Topic) (*Topic, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO topics (name, icon, article_count) VALUES (?, ?, ?)",
		t.Name, t.Icon, t.ArticleCount)
	if err != nil {
		return nil, fmt.Errorf("insert topic %q: %w", t.Name, err)
	}
	t.ID, _ = res.LastInsertId()
	return &t, nil
}
