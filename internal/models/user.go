package models

import "time"

// User is an account created at signup. It is immutable afterwards;
// there is no update path. The password field holds the bcrypt hash and
// is only serialized into the persisted snapshot, never into API
// responses (handlers return UserInfo).
type User struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"password,omitempty" bson:"password"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// UserInfo is the API-safe projection of a User.
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
