package domain

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

type Task struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	DueDate    string `db:"due_date"` // YYYY-MM-DD
	Priority   int    `db:"priority"`
	PostedDate string `db:"posted_date"` // set at creation, never updated
	Status     Status `db:"status"`
	OwnerID    string `db:"owner_id"` // set at creation, never reassigned
}
