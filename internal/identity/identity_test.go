package identity

import "testing"

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"two segments", "jane.doe@example.com", "Jane Doe"},
		{"single letters", "a.b@domain.io", "A B"},
		{"single segment", "sam@example.com", "Sam"},
		{"three segments", "mary.ann.lee@example.com", "Mary Ann Lee"},
		{"keeps inner case", "mcDonald.o'neil@example.com", "McDonald O'neil"},
		{"no at sign", "plain.text", "Plain Text"},
		{"empty segment", "a..b@example.com", "A  B"},
		{"digits", "2fast@example.com", "2fast"},
		{"unicode", "élodie@example.fr", "Élodie"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DisplayName(tt.email); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "Jane Doe", "JD"},
		{"three words truncated", "Mary Ann Lee", "MA"},
		{"one word", "Sam", "S"},
		{"double space", "A  B", "AB"},
		{"explicit name", "Sam Rivera", "SR"},
		{"unicode", "Élodie Ñúñez", "ÉÑ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Initials(tt.in); got != tt.want {
				t.Errorf("Initials(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDerivedIdentity_DottedEmails(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"a.b@domain", "a.b@example.com", "a.b@x.y.z"} {
		name := DisplayName(email)
		if name != "A B" {
			t.Errorf("DisplayName(%q) = %q, want %q", email, name, "A B")
		}
		if got := Initials(name); got != "AB" {
			t.Errorf("Initials(%q) = %q, want %q", name, got, "AB")
		}
	}
}

func TestDerivedIdentity_SingleSegment(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"sam@example.com", "x@y", "robert@example.org"} {
		name := DisplayName(email)
		initials := Initials(name)
		if len(initials) == 0 || len(initials) > 2 {
			t.Fatalf("Initials(%q) = %q, want 1 or 2 characters", name, initials)
		}
		if name[:len(initials)] != initials {
			t.Errorf("Initials(%q) = %q, want a prefix of the name", name, initials)
		}
	}
}

func TestResolveName(t *testing.T) {
	t.Parallel()

	if got := ResolveName("sam@example.com", "Sam Rivera"); got != "Sam Rivera" {
		t.Errorf("explicit name: got %q", got)
	}
	if got := ResolveName("jane.doe@example.com", ""); got != "Jane Doe" {
		t.Errorf("derived name: got %q", got)
	}
	if got := ResolveName("jane.doe@example.com", "   "); got != "Jane Doe" {
		t.Errorf("blank name: got %q", got)
	}
}

func TestPasswordStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     int
		label    string
	}{
		{"", 0, "Weak"},
		{"abc", 25, "Weak"},
		{"abcdefgh", 50, "Fair"},
		{"Abcdefgh", 75, "Good"},
		{"Abcdefg1", 100, "Strong"},
		{"ABC1", 50, "Fair"},
		{"Éééé1", 75, "Good"},
		{"éééééééé", 50, "Fair"},
	}

	for _, tt := range tests {
		tt := tt
		got := PasswordStrength(tt.password)
		if got != tt.want {
			t.Errorf("PasswordStrength(%q) = %d, want %d", tt.password, got, tt.want)
		}
		if label := StrengthLabel(got); label != tt.label {
			t.Errorf("StrengthLabel(%d) = %q, want %q", got, label, tt.label)
		}
	}
}
