package users

import "context"

// Directory resolves LMS users. Lookups that fail for any reason report
// the user as absent.
type Directory interface {
	FindUserByEmail(ctx context.Context, email string) (*Identity, bool)
	FindUserByID(ctx context.Context, id int64) (*Identity, bool)
	CurrentUserID(ctx context.Context) (int64, error)
}
