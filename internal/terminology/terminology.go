// Package terminology rewrites well-known English terms that the model tends
// to leave untranslated in Russian output.
package terminology

import (
	"regexp"
)

// Term is one source → replacement pair.
type Term struct {
	Source      string
	Replacement string
}

// Terms is the fixed glossary, applied top to bottom. Order is significant
// where keys overlap: "snack" runs before "midnight snack".
var Terms = []Term{
	// apps and services
	{"WhatsApp", "Ватсап"},
	{"whatsapp", "ватсап"},
	{"Whatsapp", "Ватсап"},
	{"Telegram", "Телеграм"},
	{"telegram", "телеграм"},
	{"CEO", "генеральный директор"},
	{"ceo", "генеральный директор"},

	// meals
	{"breakfast", "завтрак"},
	{"Breakfast", "Завтрак"},
	{"lunch", "обед"},
	{"Lunch", "Обед"},
	{"dinner", "ужин"},
	{"Dinner", "Ужин"},
	{"brunch", "поздний завтрак"},
	{"Brunch", "Поздний завтрак"},
	{"supper", "ужин"},
	{"Supper", "Ужин"},

	{"snack", "перекус"},
	{"Snack", "Перекус"},
	{"tea time", "чаепитие"},
	{"Tea time", "Чаепитие"},
	{"coffee break", "кофе-брейк"},
	{"Coffee break", "Кофе-брейк"},
	{"midnight snack", "ночной перекус"},
	{"Midnight snack", "Ночной перекус"},

	{"morning meal", "утренний прием пищи"},
	{"Morning meal", "Утренний прием пищи"},
	{"evening meal", "вечерний прием пищи"},
	{"Evening meal", "Вечерний прием пищи"},
	{"midday meal", "дневной прием пищи"},
	{"Midday meal", "Дневной прием пищи"},
}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// rules are compiled once; \b is the ASCII word boundary, so a Latin term
// next to Cyrillic letters still matches and "Whatsapping" does not.
var rules = compile(Terms)

func compile(terms []Term) []rule {
	out := make([]rule, 0, len(terms))
	for _, t := range terms {
		out = append(out, rule{
			re:          regexp.MustCompile(`\b` + regexp.QuoteMeta(t.Source) + `\b`),
			replacement: t.Replacement,
		})
	}
	return out
}

// Apply replaces every whole-word, case-sensitive occurrence of each glossary
// term. When gendered is false the text is returned unchanged.
func Apply(text string, gendered bool) string {
	if !gendered {
		return text
	}
	for _, r := range rules {
		text = r.re.ReplaceAllLiteralString(text, r.replacement)
	}
	return text
}
