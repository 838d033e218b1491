package index

import "testing"

// resolvedFor indexes a probe note containing only a link to target and
// returns the resolved column of the resulting link row.
func resolvedFor(t *testing.T, s *Store, target string) string {
	t.Helper()
	mustIndex(t, s, "probe.md", "[["+target+"]]")
	var resolved *string
	err := s.conn.QueryRow(`SELECT resolved FROM links WHERE src_note = 'probe.md'`).Scan(&resolved)
	if err != nil {
		t.Fatalf("query resolved: %v", err)
	}
	if resolved == nil {
		return ""
	}
	return *resolved
}

func TestResolve_TitleBeatsFilename(t *testing.T) {
	s := testStore(t)
	// One note whose filename matches the target, one whose title does.
	mustIndex(t, s, "files/Target.md", "# Unrelated Title\nbody")
	mustIndex(t, s, "files/other.md", "# Target\nbody")

	if got := resolvedFor(t, s, "Target"); got != "files/other.md" {
		t.Errorf("resolved = %q, want title match files/other.md", got)
	}
}

func TestResolve_ExactPath(t *testing.T) {
	s := testStore(t)
	mustIndex(t, s, "a/deep/note.md", "# Whatever")

	if got := resolvedFor(t, s, "a/deep/note.md"); got != "a/deep/note.md" {
		t.Errorf("resolved = %q, want exact path match", got)
	}
}

func TestResolve_PathSuffix(t *testing.T) {
	s := testStore(t)
	mustIndex(t, s, "x/sub/inner.md", "# Inner Doc")

	if got := resolvedFor(t, s, "sub/inner.md"); got != "x/sub/inner.md" {
		t.Errorf("resolved = %q, want path suffix match", got)
	}
}

func TestResolve_FilenameWithoutExtension(t *testing.T) {
	s := testStore(t)
	mustIndex(t, s, "g/Gamma.md", "# Some Other Title")

	if got := resolvedFor(t, s, "Gamma"); got != "g/Gamma.md" {
		t.Errorf("resolved = %q, want .md suffix match", got)
	}
}

func TestResolve_TieBreakDeterministic(t *testing.T) {
	s := testStore(t)
	// Two notes with the same title; the smaller note_id wins.
	mustIndex(t, s, "b.md", "# Dup")
	mustIndex(t, s, "a.md", "# Dup")

	if got := resolvedFor(t, s, "Dup"); got != "a.md" {
		t.Errorf("resolved = %q, want a.md (ascending note_id tie-break)", got)
	}
	// Same answer on a rerun.
	if got := resolvedFor(t, s, "Dup"); got != "a.md" {
		t.Errorf("tie-break not stable: %q", got)
	}
}

func TestResolve_ForwardReferenceStaysRaw(t *testing.T) {
	s := testStore(t)
	if got := resolvedFor(t, s, "Nobody Home"); got != "" {
		t.Errorf("resolved = %q, want unresolved", got)
	}
	var raw string
	_ = s.conn.QueryRow(`SELECT raw_target FROM links WHERE src_note = 'probe.md'`).Scan(&raw)
	if raw != "Nobody Home" {
		t.Errorf("raw_target = %q, want verbatim text", raw)
	}
}
