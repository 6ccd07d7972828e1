// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key and share slug generation for contests.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(contestID, salt)
	err := auth.ValidateAdminKey(contestID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same contest ID and salt always produce the same key. This allows validation
without storing the key in the database. Uploads and calculations require it
in the X-Admin-Key header.

# Share Slugs

Share slugs identify the public results page of a contest:

	slug := auth.GenerateShareSlug(contestID, salt)

Slugs are base62 encoded (alphanumeric only, at most 11 characters) from the
first 8 bytes of an HMAC-SHA256. Like admin keys, they're deterministic from
the contest ID and salt.

Contest IDs themselves are random UUIDs (github.com/google/uuid).
*/
package auth
