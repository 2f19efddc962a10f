// Package users implements the /api/users route group: account listing for
// admins and profile read, update and deletion.
//
// Every route requires a bearer token. Listing and deletion are restricted to
// admins. A user may read and update their own account; only admins may change
// roles.
package users
