package db

import (
	"database/sql"
)

// MigrateUp creates the schema. Statements are idempotent so startup
// can run this unconditionally.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    body       TEXT NOT NULL DEFAULT '',
    image_url  TEXT NOT NULL,
    is_draft   BOOLEAN NOT NULL DEFAULT FALSE,
    tags       JSONB NOT NULL DEFAULT '[]'::jsonb,
    author_id  TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id    TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    role  TEXT
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS credentials (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash BYTEA NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// value は JSONB: 欠損や数値でない値も表現でき、読み出し側が
	// 破損として回復する
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS counters (
    id    TEXT PRIMARY KEY,
    value JSONB NOT NULL
)`); err != nil {
		return err
	}

	indexes := []string{
		// 一覧は ORDER BY created_at DESC, id ASC で取得される
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC, id ASC)`,
		// 下書きを除いた公開側一覧用
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(created_at DESC) WHERE is_draft = FALSE`,
		`CREATE INDEX IF NOT EXISTS idx_credentials_email ON credentials(email)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
