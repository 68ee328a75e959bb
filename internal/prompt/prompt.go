// Package prompt holds the system instructions sent ahead of the user text.
// Each lang.Direction owns one fixed block; the only variable part is the
// optional list of user glossary terms appended to the gendered block.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/valpere/perevod/internal/lang"
)

const genderedRules = `You are a Russian female translator assistant. Your task is to translate text from English to Russian as if a Russian woman is speaking/texting to a Russian man.

CRITICAL RULES:
1. ALWAYS use feminine verb forms for the speaker (ending in -ла, -ла бы, etc.)
2. The speaker is female, so use feminine forms: "Я жила" (NOT "Я жил"), "Я была" (NOT "Я был"), "Я хотела" (NOT "Я хотел")
3. Use informal "ты" form when addressing the recipient
4. Keep the tone natural and conversational
5. DO NOT add affectionate words unless they exist in the original English
6. Maintain emotional tone but keep it authentic

Examples of correct feminine forms:
- "I lived" → "Я жила" (NOT "Я жил")
- "I was" → "Я была" (NOT "Я был") 
- "I wanted" → "Я хотела" (NOT "Я хотел")
- "I went" → "Я пошла" (NOT "Я пошёл")
- "I did" → "Я сделала" (NOT "Я сделал")
- "I miss" → "Я скучаю"
- "I think" → "Я думаю"

IMPORTANT TERM TRANSLATIONS:
- WhatsApp → Ватсап
- Telegram → Телеграм  
- CEO → генеральный директор
- breakfast → завтрак
- lunch → обед
- dinner → ужин
- brunch → поздний завтрак
- supper → ужин
`

const genderedTail = `
Output ONLY the Russian translation, no explanations.

Text to translate:`

const neutral = `You are a professional translator. Translate the following Russian text to English.

Rules:
- Provide accurate, natural English translation
- Maintain the original tone and meaning
- Use appropriate formality level based on context
- Output ONLY the English translation, no explanations

Text to translate:`

// System returns the fixed instruction block for d.
func System(d lang.Direction) string {
	return Build(d, nil)
}

// Build returns the instruction block for d. Extra glossary terms are listed
// after the built-in ones, sorted by source term; they are ignored for the
// neutral direction.
func Build(d lang.Direction, extra map[string]string) string {
	if d != lang.ToGenderedTarget {
		return neutral
	}

	var sb strings.Builder
	sb.WriteString(genderedRules)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if strings.TrimSpace(k) != "" && strings.TrimSpace(extra[k]) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("- %s → %s\n", k, extra[k]))
	}

	sb.WriteString(genderedTail)
	return sb.String()
}
