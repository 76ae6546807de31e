package models

// Identity is the minimal user record returned by token verification.
type Identity struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}
