package models

// User represents an account. The password is stored as supplied in plain
// mode, or as a bcrypt hash when hashing is enabled.
type User struct {
	Username string `json:"username" bson:"username"`
	Password string `json:"-" bson:"password"`
	Avatar   string `json:"avatar" bson:"avatar"` // URL or base64 image
}
