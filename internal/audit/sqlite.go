package audit

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rusenback/docker-gateway/internal/model"
	_ "modernc.org/sqlite"
)

const (
	queueSize     = 1000
	batchSize     = 50
	flushInterval = 5 * time.Second
	sweepInterval = time.Hour
	retention     = 30 * 24 * time.Hour
	deleteBatch   = 1000
)

// Store is an append-only trail of start/stop requests. Writes are queued and
// batch-inserted by a background goroutine so requests never wait on disk.
type Store struct {
	db        *sql.DB
	logger    *slog.Logger
	writeChan chan model.AuditEntry
	closeChan chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewStore opens (or creates) the database at path and starts the writer
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps the writer and readers from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{
		db:        db,
		logger:    logger,
		writeChan: make(chan model.AuditEntry, queueSize),
		closeChan: make(chan struct{}),
	}

	s.wg.Add(2)
	go s.writer()
	go s.cleanup()

	return s, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		container_id TEXT NOT NULL,
		container_name TEXT,
		outcome TEXT NOT NULL,
		request_id TEXT,
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_time
	ON audit_log(timestamp);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Record queues an entry. It never blocks; when the queue is full the entry is dropped.
func (s *Store) Record(entry model.AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	select {
	case s.writeChan <- entry:
	default:
		s.logger.Warn("audit queue full, dropping entry",
			"action", entry.Action, "container_id", entry.ContainerID)
	}
}

// writer runs in background and batch writes to database
func (s *Store) writer() {
	defer s.wg.Done()

	buffer := make([]model.AuditEntry, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry := <-s.writeChan:
			buffer = append(buffer, entry)
			if len(buffer) >= batchSize {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-ticker.C:
			if len(buffer) > 0 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-s.closeChan:
			// drain whatever is still queued, then final flush
		drain:
			for {
				select {
				case entry := <-s.writeChan:
					buffer = append(buffer, entry)
				default:
					break drain
				}
			}
			if len(buffer) > 0 {
				s.batchWrite(buffer)
			}
			return
		}
	}
}

// batchWrite writes a batch of entries in one transaction
func (s *Store) batchWrite(entries []model.AuditEntry) {
	if err := s.insert(entries); err != nil {
		s.logger.Error("audit batch write failed", "entries", len(entries), "err", err)
	}
}

func (s *Store) insert(entries []model.AuditEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO audit_log
		(action, container_id, container_name, outcome, request_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(
			e.Action,
			e.ContainerID,
			e.ContainerName,
			e.Outcome,
			e.RequestID,
			e.Timestamp.UnixMilli(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT action, container_id, container_name, outcome, request_id, timestamp
		FROM audit_log
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var (
			e       model.AuditEntry
			name    sql.NullString
			reqID   sql.NullString
			tsMilli int64
		)
		if err := rows.Scan(&e.Action, &e.ContainerID, &name, &e.Outcome, &reqID, &tsMilli); err != nil {
			return nil, err
		}
		e.ContainerName = name.String
		e.RequestID = reqID.String
		e.Timestamp = time.UnixMilli(tsMilli).UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// cleanup removes entries past the retention period
func (s *Store) cleanup() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeBefore(time.Now().Add(-retention))
		case <-s.closeChan:
			return
		}
	}
}

// purgeBefore deletes old rows in batches to avoid long-running locks
func (s *Store) purgeBefore(cutoff time.Time) int64 {
	var total int64
	for {
		result, err := s.db.Exec(`
			DELETE FROM audit_log WHERE id IN (
				SELECT id FROM audit_log WHERE timestamp < ? LIMIT ?
			)`,
			cutoff.UnixMilli(),
			deleteBatch,
		)
		if err != nil {
			s.logger.Error("audit cleanup failed", "err", err)
			return total
		}

		n, err := result.RowsAffected()
		if err != nil || n == 0 {
			return total
		}
		total += n
	}
}

// Close flushes pending entries and closes the database
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closeChan)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}
