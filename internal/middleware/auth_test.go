package middleware

import "testing"

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"plain", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"quoted", `Bearer "abc"`, "abc", true},
		{"single quoted", "Bearer 'abc'", "abc", true},
		{"trailing junk after comma", "Bearer abc, extra", "abc", true},
		{"trailing junk after space", "Bearer abc extra", "abc", true},
		{"empty", "", "", false},
		{"no scheme", "abc", "", false},
		{"wrong scheme", "Basic abc", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ExtractBearerToken(c.in)
			if ok != c.valid {
				t.Fatalf("valid = %v, want %v", ok, c.valid)
			}
			if c.valid && got != c.want {
				t.Fatalf("token = %q, want %q", got, c.want)
			}
		})
	}
}
