// Package auth issues and verifies the broker's HS256 bearer tokens and
// provides the gin middleware gating routes by role. Credentials come from a
// static table in the process configuration; the broker has no user store.
package auth
