package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"sqlite://:memory:", ":memory:", false},
		{"sqlite:///var/lib/resonanz/journal.db", "/var/lib/resonanz/journal.db", false},
		{"sqlite://./journal.db", "./journal.db", false},
		{"sqlite://journal.db", "./journal.db", false},
		{"sqlite://mein%20journal.db?_pragma=foo", "./mein journal.db?_pragma=foo", false},
		{"sqlite://", "", true},
		{"file:journal.db", "", true},
	}
	for _, tt := range tests {
		got, err := parseDSN(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDSN(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFTS(t *testing.T) {
	if got := sanitizeFTS(`was "ist" los`); got != `"was" "ist" "los"` {
		t.Errorf("sanitizeFTS = %q", got)
	}
	if got := sanitizeFTS(`  ""  `); got != "" {
		t.Errorf("sanitizeFTS(quotes) = %q, want empty", got)
	}
}
