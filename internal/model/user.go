package model

// UserRecord is the payload of the account lifecycle events delivered by
// the identity platform.
type UserRecord struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
