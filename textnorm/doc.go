// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package textnorm normalizes names before they are compared.

Office names, categories and territorial scales arrive from spreadsheets
typed by hand, so "Diputados  Nacionales", "diputados nacionales" and
"DIPUTADOS NACIONALES " must all compare equal:

	textnorm.Normalize("  Senadores   Nacionales ") // "senadores nacionales"
	textnorm.Normalize("Mayoría-Simple")            // "mayoria-simple"

Normalize never fails. Empty input yields an empty string.
*/
package textnorm
