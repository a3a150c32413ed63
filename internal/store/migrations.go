package store

// AUTOINCREMENT keeps rowids monotonic so content identifiers are never
// reused after a catalog clear.
const schema = `
CREATE TABLE IF NOT EXISTS content (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    category    TEXT NOT NULL,
    is_premium  BOOLEAN NOT NULL DEFAULT 0,
    image_url   TEXT NOT NULL,
    view_count  INTEGER NOT NULL DEFAULT 0,
    duration    TEXT NOT NULL DEFAULT '',
    author_id   INTEGER,
    created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_content_category ON content(category);
CREATE INDEX IF NOT EXISTS idx_content_created_at ON content(created_at);

CREATE TABLE IF NOT EXISTS topics (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL UNIQUE,
    icon          TEXT NOT NULL,
    article_count INTEGER NOT NULL DEFAULT 0
);
`

// seedTopic is one row of the initial trending-topics set.
type seedTopic struct {
	name         string
	icon         string
	articleCount int
}

var seedTopics = []seedTopic{
	{"ChatGPT", "fas fa-robot", 2100},
	{"Deep Learning", "fas fa-brain", 1800},
	{"Computer Vision", "fas fa-eye", 1200},
	{"NLP", "fas fa-comments", 950},
}
