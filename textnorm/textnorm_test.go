package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents and punctuation", "Čevapi, Šibenik!", "cevapi sibenik"},
		{"collapses whitespace", "  pizza \t\n  margherita  ", "pizza margherita"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"punctuation only", "!!!,,,", ""},
		{"digits kept", "Menu 24/7", "menu 24 7"},
		{"western accents", "Crème Brûlée", "creme brulee"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Čevapi, Šibenik!", "ĐAKOVO  grad", "a--b__c", "Žličnjaci (domaći)", ""}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestLatinize(t *testing.T) {
	assert.Equal(t, "dakovo", Latinize("ĐAKOVO"))
	assert.Equal(t, Latinize("đakovo"), Latinize("ĐAKOVO"))
	assert.Equal(t, "cevapcici, molim!", Latinize("  Ćevapčići, molim!  "))
	assert.Equal(t, "zlicnjaci", Latinize("žličnjaci"))
	assert.Equal(t, "creme brulee", Latinize("Crème Brûlée"))
	assert.Equal(t, "", Latinize("   "))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"pizza", "quattro", "formaggi"}, Words("pizza-quattro  formaggi!"))
	assert.Empty(t, Words("--- ,,,"))
	assert.Equal(t, []string{"123"}, Words("123"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("imamo cevapi danas", "cevapi"))
	assert.False(t, ContainsWord("imamo cevape", "cevapi"))
	assert.True(t, ContainsWord("Pizza Margherita", "pizza"))
	assert.False(t, ContainsWord("pizzeria", "pizza"))
	assert.False(t, ContainsWord("anything", ""))
	assert.NotPanics(t, func() {
		assert.True(t, ContainsWord("a+b (c)", "(c"))
		assert.False(t, ContainsWord("a+b (c)", "+b ("))
	})
}

func TestHasLetter(t *testing.T) {
	assert.True(t, HasLetter("a1"))
	assert.False(t, HasLetter("123"))
	assert.False(t, HasLetter(""))
}
