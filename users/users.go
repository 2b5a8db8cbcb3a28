package users

import "strconv"

// Identity is an LMS user as the gateway knows it. It is the only user
// record the gateway holds and it is never persisted.
type Identity struct {
	ID       int64  `json:"id"`       // LMS user id
	Email    string `json:"email"`    // Primary email address registered in the LMS
	FullName string `json:"fullname"` // Display name as reported by the LMS
}

// Subject renders the LMS id as a token subject.
func (i Identity) Subject() string {
	return strconv.FormatInt(i.ID, 10)
}

// ParseSubject is the inverse of Subject.
func ParseSubject(sub string) (int64, error) {
	return strconv.ParseInt(sub, 10, 64)
}
