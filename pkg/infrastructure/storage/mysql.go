package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MySQLStore is an alternative durable scope backed by a kv table, for
// setups that want the state to outlive the host machine. It offers the
// same contract as FileStore and nothing more: no transactions across
// keys, last writer wins.
type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(dsn string) (*MySQLStore, error) {
	if err := migrateSchema(dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mysql")
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Get(key string, out any) (bool, error) {
	var raw []byte
	err := s.db.Get(&raw, "SELECT v FROM kv WHERE k = ?", key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "select key %q", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "decode value for key %q", key)
	}
	return true, nil
}

func (s *MySQLStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode value for key %q", key)
	}
	_, err = s.db.Exec("INSERT INTO kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)", key, raw)
	return errors.Wrapf(err, "upsert key %q", key)
}

func (s *MySQLStore) Remove(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE k = ?", key)
	return errors.Wrapf(err, "delete key %q", key)
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}

func migrateSchema(dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, fmt.Sprintf("mysql://%s", dsn))
	if err != nil {
		return errors.Wrap(err, "init migrations")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
