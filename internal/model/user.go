package model

// User is a locally registered account. Passwords are stored and compared
// in plaintext; this is a single-user local tool, not an authentication
// system.
type User struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginState is the ambient session state kept in the preference layer.
type LoginState struct {
	IsLoggedIn      bool   `json:"isLoggedIn"`
	CurrentUsername string `json:"currentUsername"`
}
