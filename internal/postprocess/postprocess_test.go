package postprocess

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text untouched",
			input:    "Привет, как дела?",
			expected: "Привет, как дела?",
		},
		{
			name:     "wrapped in em dashes",
			input:    "— Завтрак с Ватсап —",
			expected: "Завтрак с Ватсап",
		},
		{
			name:     "em dash as separator",
			input:    "Я была дома—и ждала",
			expected: "Я была дома и ждала",
		},
		{
			name:     "en dash with spaces",
			input:    "утро – вечер",
			expected: "утро вечер",
		},
		{
			name:     "hyphen list marker",
			input:    "- Hello there",
			expected: "Hello there",
		},
		{
			name:     "hyphenated compound collapses",
			input:    "кофе-брейк",
			expected: "кофе брейк",
		},
		{
			name:     "whitespace runs collapse",
			input:    "one  \t two\n\nthree",
			expected: "one two three",
		},
		{
			name:     "newlines around text",
			input:    "\n\n  Hello  \n",
			expected: "Hello",
		},
		{
			name:     "non-breaking spaces",
			input:    " Hello  world　",
			expected: "Hello world",
		},
		{
			name:     "only dashes",
			input:    " — – - ",
			expected: "",
		},
		{
			name:     "mixed trailing dashes",
			input:    "Hello -—–",
			expected: "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"— Завтрак с Ватсап —",
		"a - b — c – d",
		"  -x-  ",
		" word — word ",
		"line1\r\nline2",
		"---",
		"no changes here",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{"", "— a —", "a-b", "  -— x ", "тест – тест"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	})
}
