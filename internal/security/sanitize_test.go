package security

import (
	"strings"
	"testing"
)

func TestSanitizeStripsScriptTags(t *testing.T) {
	got := Sanitize(`Task done <script>alert(1)</script> nicely`)
	if strings.Contains(got, "script") || strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("Sanitize left script content: %q", got)
	}
	if !strings.Contains(got, "Task done") || !strings.Contains(got, "nicely") {
		t.Errorf("Sanitize removed legitimate text: %q", got)
	}
}

func TestSanitizeStripsShellInjection(t *testing.T) {
	got := Sanitize(`Build finished $(rm -rf /)`)
	for _, bad := range []string{"$", "(", ")", ";", "|", "&", "`"} {
		if strings.Contains(got, bad) {
			t.Errorf("Sanitize left shell metacharacter %q in %q", bad, got)
		}
	}
	if !strings.HasPrefix(got, "Build finished") {
		t.Errorf("Sanitize mangled the message: %q", got)
	}
}

func TestSanitizeStripsPathTraversal(t *testing.T) {
	got := Sanitize("Read ../../etc/passwd done")
	if strings.Contains(got, "..") {
		t.Errorf("Sanitize left path traversal in %q", got)
	}
}

func TestSanitizeKeepsEmotionTags(t *testing.T) {
	got := Sanitize("[✅ success] Fixed the bug")
	if got != "[✅ success] Fixed the bug" {
		t.Errorf("Sanitize altered an emotion tag: %q", got)
	}
}

func TestSanitizeCleanMessageUnchanged(t *testing.T) {
	msg := "Bug fixed: Resolved the login race. This took 45 seconds."
	if got := Sanitize(msg); got != msg {
		t.Errorf("Sanitize changed a clean message: %q", got)
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	got := Sanitize("**Fixed** the `parser`\n# heading")
	if strings.ContainsAny(got, "*`#") {
		t.Errorf("Sanitize left markup in %q", got)
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", MaxMessageLength+200)
	if got := Sanitize(long); len(got) != MaxMessageLength {
		t.Errorf("Sanitize length = %d, want %d", len(got), MaxMessageLength)
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength("title", strings.Repeat("x", MaxMessageLength)); err != nil {
		t.Errorf("ValidateLength at limit: %v", err)
	}
	err := ValidateLength("title", strings.Repeat("x", MaxMessageLength+1))
	if err == nil {
		t.Fatal("ValidateLength accepted over-length value")
	}
	if !strings.HasPrefix(err.Error(), "Invalid title") {
		t.Errorf("error = %q, want Invalid title prefix", err)
	}
}

func TestSanitizeMessage(t *testing.T) {
	got, err := SanitizeMessage("Task completed")
	if err != nil || got != "Task completed" {
		t.Errorf("SanitizeMessage = (%q, %v)", got, err)
	}

	if _, err := SanitizeMessage("$();|"); err == nil {
		t.Error("SanitizeMessage accepted a message that sanitizes to nothing")
	}

	if _, err := SanitizeMessage(strings.Repeat("x", MaxMessageLength+1)); err == nil {
		t.Error("SanitizeMessage accepted an over-length message")
	}
}
