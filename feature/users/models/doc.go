// Package models defines the user account persisted by GORM together with the
// validation and password hashing rules shared by the auth and users features.
package models
