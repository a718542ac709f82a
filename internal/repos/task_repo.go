package repos

import (
	"database/sql"
	"errors"

	"taskr/internal/domain"
	"taskr/internal/policy"

	"github.com/jmoiron/sqlx"
)

type TaskRepo struct{ DB *sqlx.DB }

func NewTaskRepo(db *sqlx.DB) *TaskRepo { return &TaskRepo{DB: db} }

const taskCols = `id,name,due_date,priority,posted_date,status,owner_id`

func (r *TaskRepo) Create(t *domain.Task) error {
	_, err := r.DB.Exec(`INSERT INTO tasks(`+taskCols+`) VALUES(?,?,?,?,?,?,?)`,
		t.ID, t.Name, t.DueDate, t.Priority, t.PostedDate, t.Status, t.OwnerID)
	return err
}

func (r *TaskRepo) Get(id string) (*domain.Task, error) {
	var t domain.Task
	err := r.DB.Get(&t, `SELECT `+taskCols+` FROM tasks WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByStatus returns tasks in the given state ordered by due date ascending.
func (r *TaskRepo) ListByStatus(status domain.Status) ([]domain.Task, error) {
	var out []domain.Task
	err := r.DB.Select(&out, `SELECT `+taskCols+` FROM tasks WHERE status=? ORDER BY due_date ASC, id ASC`, status)
	return out, err
}

// SetStatus moves a task to the given state. The read, the ownership check and
// the write run in one transaction so a concurrent mutation on the same id
// cannot interleave between check and act. Setting the current state again is
// a no-op that still succeeds.
func (r *TaskRepo) SetStatus(ac domain.AuthContext, id string, status domain.Status) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var t domain.Task
	if err := tx.Get(&t, `SELECT `+taskCols+` FROM tasks WHERE id=?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if !policy.CanMutate(ac, t) {
		return domain.ErrUnauthorized
	}
	if t.Status == status {
		return tx.Commit()
	}
	if _, err := tx.Exec(`UPDATE tasks SET status=? WHERE id=?`, status, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a task permanently, with the same transactional guard as
// SetStatus.
func (r *TaskRepo) Delete(ac domain.AuthContext, id string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var t domain.Task
	if err := tx.Get(&t, `SELECT `+taskCols+` FROM tasks WHERE id=?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if !policy.CanMutate(ac, t) {
		return domain.ErrUnauthorized
	}
	if _, err := tx.Exec(`DELETE FROM tasks WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
