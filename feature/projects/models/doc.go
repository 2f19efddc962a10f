// Package models defines the project and attachment records persisted by GORM.
package models
