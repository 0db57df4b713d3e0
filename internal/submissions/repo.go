package submissions

import "context"

// Repo persists submission audit rows.
type Repo interface {
	Create(ctx context.Context, sub Submission) error
}
