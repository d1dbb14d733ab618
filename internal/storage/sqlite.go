package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists trace data in a single kv table. Values are
// zstd-compressed on the way in; snippets of source code compress well
// and traces for large repositories add up.
type SQLiteStore struct {
	conn    *sql.DB
	logger  *slog.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// OpenSQLiteStore opens or creates the trace database under dir
// (normally the repository's .repotutor directory).
func OpenSQLiteStore(dir string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "traces.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA cache_size=-16000", // 16MB cache
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)`
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize trace schema: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}

	logger.Debug("trace store opened", "path", dbPath)
	return &SQLiteStore{conn: conn, logger: logger, dbPath: dbPath, encoder: encoder, decoder: decoder}, nil
}

func (s *SQLiteStore) Get(key string) ([]byte, bool, error) {
	var compressed []byte
	err := s.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	value, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key string, value []byte) error {
	compressed := s.encoder.EncodeAll(value, nil)
	_, err := s.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, compressed)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.conn.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) List(prefix string) ([]string, error) {
	// Keys embed file paths, so the prefix can contain LIKE metacharacters
	// (snake_case names in particular). Match them literally.
	pattern := likeEscape(prefix) + "%"
	rows, err := s.conn.Query(`SELECT key FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func likeEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *SQLiteStore) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	return s.conn.Close()
}
