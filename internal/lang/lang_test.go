package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{input: "en", want: English},
		{input: "en-GB", want: English},
		{input: " ru ", want: Russian},
		{input: "ru-RU", want: Russian},
		{input: "uk", wantErr: true},
		{input: "", wantErr: true},
		{input: "not a tag!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPair_Direction(t *testing.T) {
	assert.Equal(t, ToGenderedTarget, Pair{Source: English, Target: Russian}.Direction())
	assert.Equal(t, ToNeutralTarget, Pair{Source: Russian, Target: English}.Direction())
	// same-to-same is not rejected; the source alone decides
	assert.Equal(t, ToGenderedTarget, Pair{Source: English, Target: English}.Direction())
}

func TestPair_GenderedTarget(t *testing.T) {
	assert.True(t, Pair{Source: English, Target: Russian}.GenderedTarget())
	assert.True(t, Pair{Source: Russian, Target: Russian}.GenderedTarget())
	assert.False(t, Pair{Source: Russian, Target: English}.GenderedTarget())
}

func TestPair_Swap(t *testing.T) {
	p := Pair{Source: English, Target: Russian}
	assert.Equal(t, Pair{Source: Russian, Target: English}, p.Swap())
	assert.Equal(t, p, p.Swap().Swap())
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("en", "ru")
	require.NoError(t, err)
	assert.Equal(t, "en→ru", p.String())

	_, err = ParsePair("en", "de")
	assert.ErrorContains(t, err, "target")
}

func TestLanguage_Label(t *testing.T) {
	assert.Equal(t, "English", English.Label())
	assert.Equal(t, "Русский", Russian.Label())
}
