package index

import "database/sql"

// resolveTarget maps a raw wikilink target to the id of an existing note.
// Candidates are ranked, first match wins:
//
//  1. exact title equality (case-sensitive)
//  2. exact path equality
//  3. path ends with "/" + target
//  4. path ends with "/" + target + ".md"
//
// A title match is stronger evidence of author intent than an incidental
// filename match. Ties within a rank break by ascending note_id, so
// resolution is deterministic. The second return is false when the target
// is a forward reference to a note that does not exist yet; that is not an
// error, the raw text is kept verbatim by the caller.
func resolveTarget(tx *sql.Tx, target string) (string, bool) {
	var id string
	err := tx.QueryRow(`
		SELECT note_id FROM notes
		WHERE title = ? OR path = ?
		   OR path LIKE '%/' || ? OR path LIKE '%/' || ? || '.md'
		ORDER BY
			CASE
				WHEN title = ? THEN 1
				WHEN path = ? THEN 2
				WHEN path LIKE '%/' || ? THEN 3
				ELSE 4
			END,
			note_id
		LIMIT 1
	`, target, target, target, target, target, target, target).Scan(&id)
	if err != nil {
		return "", false
	}
	return id, true
}
