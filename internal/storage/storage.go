// Package storage keeps project revisions in a SQL database.
package storage

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/klauspost/compress/zstd"
	"github.com/sinbaddoraji/Dream/internal/config"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/project"
	"golang.org/x/crypto/blake2b"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored revision of a project. Data is the zstd-compressed
// project document.
type Snapshot struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Project     string         `gorm:"index;not null" json:"project"`
	Label       string         `json:"label"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
	ObjectCount int            `json:"objectCount"`
	Stats       datatypes.JSON `json:"stats"`
	Hash        string         `gorm:"size:64;index" json:"hash"`
	Data        []byte         `gorm:"not null" json:"-"`
}

// Store is a snapshot database.
type Store struct {
	db  *gorm.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// DefaultPath returns the SQLite file used when no DSN is given.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, config.AppName, "snapshots.db"), nil
}

// IsPostgres reports whether dsn names a Postgres server rather than a SQLite file.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Open connects to dsn and migrates the schema. An empty dsn opens the
// default SQLite file; ":memory:" opens a private in-memory database.
func Open(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch {
	case IsPostgres(dsn):
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	case dsn == ":memory:":
		dialector = sqlite.Open("file::memory:")
	default:
		if dsn == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			dsn = p
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// One connection keeps in-memory databases alive and serialises writers.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	logger.Infof("Storage: using %s snapshot store", dialector.Name())
	return &Store{db: db, enc: enc, dec: dec}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Hash returns the content digest of doc. The save time is not part of it.
func Hash(doc *project.Document) (string, error) {
	c := *doc
	c.SavedAt = time.Time{}
	data, err := project.Encode(&c)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Save stores doc as a new revision of name. When the content is identical to
// the latest revision nothing is written and saved is false.
func (s *Store) Save(ctx context.Context, name, label string, doc *project.Document) (snap *Snapshot, saved bool, err error) {
	hash, err := Hash(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash project: %w", err)
	}
	latest, err := s.Latest(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	if latest != nil && latest.Hash == hash {
		logger.DebugTagf("storage", "Storage: %s unchanged, skipping snapshot", name)
		return latest, false, nil
	}

	data, err := project.Encode(doc)
	if err != nil {
		return nil, false, fmt.Errorf("encode project: %w", err)
	}
	stats, err := json.Marshal(doc.CountByType())
	if err != nil {
		return nil, false, fmt.Errorf("encode stats: %w", err)
	}

	snap = &Snapshot{
		Project:     name,
		Label:       label,
		CreatedAt:   time.Now().UTC(),
		ObjectCount: len(doc.Objects),
		Stats:       datatypes.JSON(stats),
		Hash:        hash,
		Data:        s.enc.EncodeAll(data, nil),
	}
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, false, fmt.Errorf("save snapshot: %w", err)
	}
	logger.Infof("Storage: saved snapshot %d of %s (%d objects, %d bytes)", snap.ID, name, snap.ObjectCount, len(snap.Data))
	return snap, true, nil
}

// Latest returns the newest revision of name without its data.
func (s *Store) Latest(ctx context.Context, name string) (*Snapshot, error) {
	list, err := s.List(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

// List returns up to limit revisions of name, newest first, without their
// data. A limit of zero or less returns all of them.
func (s *Store) List(ctx context.Context, name string, limit int) ([]Snapshot, error) {
	var out []Snapshot
	q := s.db.WithContext(ctx).
		Select("id", "project", "label", "created_at", "object_count", "stats", "hash").
		Where("project = ?", name).
		Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

// Projects returns the names that have at least one revision.
func (s *Store) Projects(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&Snapshot{}).
		Distinct().Order("project").Pluck("project", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return names, nil
}

// Load returns a revision and its decoded document.
func (s *Store) Load(ctx context.Context, id uint) (*Snapshot, *project.Document, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).First(&snap, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot %d: %w", id, err)
	}
	data, err := s.dec.DecodeAll(snap.Data, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot %d: %w", id, err)
	}
	doc, err := project.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot %d: %w", id, err)
	}
	return &snap, doc, nil
}

// Prune deletes all but the newest keep revisions of name and returns how
// many were removed.
func (s *Store) Prune(ctx context.Context, name string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	var ids []uint
	err := s.db.WithContext(ctx).Model(&Snapshot{}).
		Where("project = ?", name).
		Order("id desc").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("find stale snapshots: %w", err)
	}
	if len(ids) <= keep {
		return 0, nil
	}
	stale := ids[keep:]
	res := s.db.WithContext(ctx).Delete(&Snapshot{}, stale)
	if res.Error != nil {
		return 0, fmt.Errorf("prune snapshots: %w", res.Error)
	}
	logger.DebugTagf("storage", "Storage: pruned %d snapshot(s) of %s", res.RowsAffected, name)
	return res.RowsAffected, nil
}

// ParseStats decodes the per-type object counts of a snapshot.
func (s *Snapshot) ParseStats() (map[string]int, error) {
	stats := map[string]int{}
	if len(s.Stats) == 0 {
		return stats, nil
	}
	err := json.Unmarshal(s.Stats, &stats)
	return stats, err
}
