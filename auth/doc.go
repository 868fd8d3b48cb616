// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth gates the topic admin screen.

# Password Gate

The admin screen is protected by one shared password:

	gate := auth.NewPasswordGate(cfg.AdminPassword)
	err := gate.Authenticate(r.Header.Get("X-Admin-Password"))

The comparison is plaintext (constant time). There are no tokens, no expiry,
and no per-user identity; the admin page keeps the password in memory and
sends it with every request. When no password is configured the gate falls
back to DefaultPassword and the server logs a warning at boot.

Handlers depend on the Authenticator interface, so a hashed credential or a
session scheme can replace PasswordGate without touching the admin flow.
*/
package auth
