package services

import "errors"

var (
	ErrUserExists     = errors.New("username or email already exists")
	ErrUserNotCreated = errors.New("user was not created")
	ErrUpstream       = errors.New("upstream dataset unavailable")
	ErrSeedBusy       = errors.New("seeding in progress")
)

// NotFoundError reports a lookup miss. Subject is the capitalized thing that
// was looked for, e.g. "Planet" or "User or vehicle".
type NotFoundError struct {
	Subject string
}

func (e *NotFoundError) Error() string {
	return e.Subject + " not found"
}

func notFound(subject string) error {
	return &NotFoundError{Subject: subject}
}
