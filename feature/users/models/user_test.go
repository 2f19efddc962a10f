package models

import (
	"testing"

	"project-admin/core/database"
	"project-admin/core/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Jane@Example.com", "jane@example.com", false},
		{"  bob@example.org ", "bob@example.org", false},
		{"not-an-email", "", true},
		{"Jane <jane@example.com>", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Ada Lovelace ")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)

	_, err = NormalizeName("   ")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestPassword(t *testing.T) {
	u := &User{}
	assert.ErrorIs(t, u.SetPassword("short", bcrypt.MinCost), ErrInvalidPassword)

	require.NoError(t, u.SetPassword("correct horse", bcrypt.MinCost))
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong horse"))
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleUser))
	assert.NoError(t, ValidateRole(RoleAdmin))
	assert.ErrorIs(t, ValidateRole("root"), ErrInvalidRole)
}

func TestBeforeCreate(t *testing.T) {
	u := &User{}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Len(t, u.ID, 36)

	u = &User{ID: "fixed"}
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "fixed", u.ID)
}

func TestStoredRole(t *testing.T) {
	db := dbtest.Open(t, &User{})
	u := &User{Name: "Ada", Email: "ada@example.com", PasswordHash: "-", Role: RoleAdmin}
	require.NoError(t, db.Create(u).Error)

	lookup := StoredRole(database.Static(db))

	role, err := lookup(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	require.NoError(t, db.Model(u).Update("role", RoleUser).Error)
	role, err = lookup(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	_, err = lookup(t.Context(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = StoredRole(database.NewHandle())(t.Context(), u.ID)
	assert.ErrorIs(t, err, database.ErrNotReady)
}
