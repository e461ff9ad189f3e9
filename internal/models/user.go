// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package models

import "strings"

// AdminRole is the role string that grants write access.
// Any other role is non-privileged.
const AdminRole = "abiding"

// User is an account record. Password holds the bcrypt hash in storage and
// is cleared by Sanitized before a user is written to a response.
type User struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,min=3,max=255,email"`
	Password string `json:"password,omitempty" validate:"required,min=3,max=1024"`
	Roles    string `json:"roles" validate:"required,min=3,max=50"`
}

// Trim normalizes the string fields in place. The password is deliberately
// not trimmed once hashed; trimming happens before hashing.
func (u *User) Trim() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Roles = strings.TrimSpace(u.Roles)
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Roles == AdminRole
}

// Sanitized returns a copy of the user with the password hash cleared,
// suitable for serialization to clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// SanitizedUsers returns copies of users with password hashes cleared.
func SanitizedUsers(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out
}

// Credentials is the login payload. It is deliberately more lenient than the
// full User model: only email and password are required.
type Credentials struct {
	Email    string `json:"email" validate:"required,min=3,max=255,email"`
	Password string `json:"password" validate:"required,min=3,max=1024"`
}
