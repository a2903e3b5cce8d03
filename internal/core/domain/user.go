package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already exists")
var ErrEmailTaken = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWeakPassword = errors.New("password does not meet the minimum policy")

// User models a registered account. The password is stored only as a bcrypt
// hash; the raw password never leaves the registration/login call stack.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
