package domain

// User represents a registered account. Token is the permanent bearer
// credential issued at registration.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Token        string
}
