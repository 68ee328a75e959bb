package detector

import (
	"testing"

	"github.com/valpere/perevod/internal/lang"
)

func TestDetector_Detect(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantLang lang.Language
		wantOK   bool
	}{
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
		{
			name:     "english text",
			text:     "Hello, this is a test in English.",
			wantLang: lang.English,
			wantOK:   true,
		},
		{
			name:     "russian text",
			text:     "Привет, это проверка на русском языке.",
			wantLang: lang.Russian,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Errorf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if got != tt.wantLang {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.wantLang)
			}
		})
	}
}

func TestDetector_Pair(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want lang.Pair
	}{
		{"english source", "I went to the store yesterday evening.", lang.Pair{Source: lang.English, Target: lang.Russian}},
		{"russian source", "Вчера вечером я ходила в магазин.", lang.Pair{Source: lang.Russian, Target: lang.English}},
		{"empty falls back", "", lang.Pair{Source: lang.English, Target: lang.Russian}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Pair(tt.text); got != tt.want {
				t.Errorf("Pair(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
