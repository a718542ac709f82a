package repos

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure the bootstrap admin exists (idempotent; safe to run every start)
	if err := seedAdmin(db); err != nil {
		return nil, err
	}
	// Seed demo tasks if the DB is empty
	if err := seedTasksIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_name_nocase  ON users(LOWER(name));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_nocase ON users(LOWER(email));

-- Sessions
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Tasks
CREATE TABLE IF NOT EXISTS tasks(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  due_date TEXT NOT NULL,
  priority INTEGER NOT NULL DEFAULT 1,
  posted_date TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN','CLOSED')),
  owner_id TEXT NOT NULL REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_tasks_status_due ON tasks(status, due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedAdmin ensures the bootstrap ADMIN account exists. Roles are assigned
// here only; there is no promotion path at runtime.
func seedAdmin(db *sqlx.DB) error {
	h, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	if err != nil {
		return err
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(id,name,email,password_hash,role)
		SELECT 'u-admin', 'admin', 'ad@min.com', ?, 'ADMIN'
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE LOWER(name)='admin')
	`, string(h)); err != nil {
		return err
	}

	return tx.Commit()
}

// seedTasksIfEmpty inserts two demo tasks owned by the admin account.
func seedTasksIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM tasks`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo tasks")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tasks := []struct {
		Name, Due string
		Priority  int
	}{
		{"Finish this tutorial", "2018-09-22", 10},
		{"Finish Real Python", "2018-01-03", 10},
	}
	for _, t := range tasks {
		if _, err := tx.Exec(`
			INSERT INTO tasks(id,name,due_date,priority,posted_date,status,owner_id)
			VALUES(?,?,?,?,?,'OPEN','u-admin')
		`, uuid.NewString(), t.Name, t.Due, t.Priority, t.Due); err != nil {
			return err
		}
	}

	return tx.Commit()
}
