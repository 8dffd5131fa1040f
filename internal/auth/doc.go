// Package auth provides session-based authentication for the marketplace:
// email/password signup and login backed by bcrypt, cookie sessions stored
// in SQLite, a public-route allow-list middleware, login rate limiting,
// CSRF protection, and security headers.
//
// Identity is carried in the session as the user's database ID; everything
// downstream (interest actions, profile) reads it from the request context
// rather than ambient globals.
package auth
