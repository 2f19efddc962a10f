// Package auth implements account registration and login.
//
// Passwords are stored as bcrypt hashes; a successful registration or login
// returns a signed access token together with the user.
//
// # HTTP Endpoints
//
//   - POST /api/auth/register : Creates an account with the "user" role.
//   - POST /api/auth/login : Exchanges email and password for a token.
//   - GET /api/auth/me : Returns the user behind the bearer token.
package auth
