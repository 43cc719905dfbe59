package insight

import (
	"sort"
	"strings"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// Words too generic to identify a deal on their own.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "deal": true,
	"deals": true, "inc": true, "llc": true, "corp": true, "ltd": true,
	"company": true, "new": true, "this": true, "that": true, "what": true,
	"about": true, "how": true, "are": true, "is": true,
}

// Phrases that point back at a deal mentioned earlier in the conversation.
var backreferencePhrases = []string{
	"that deal", "this deal", "this one", "that one", "the same deal", "it",
}

// normalizeText lowercases, strips punctuation, and collapses whitespace so
// matching is insensitive to casing and formatting.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// significantWords returns the identifying words of a name: 3+ characters
// and not in the stopword list.
func significantWords(normalized string) []string {
	var words []string
	for _, w := range strings.Fields(normalized) {
		if len(w) >= 3 && !stopwords[w] {
			words = append(words, w)
		}
	}
	return words
}

// FindMentionedDeals matches deal names against a free-text query. Whole
// names matched as substrings win outright; otherwise deals are ranked by
// how many of their significant name words appear in the query.
func FindMentionedDeals(query string, deals []domain.Deal) []domain.Deal {
	normalized := " " + normalizeText(query) + " "
	queryWords := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		queryWords[w] = true
	}

	var whole []domain.Deal
	type partial struct {
		deal    domain.Deal
		matched int
	}
	var partials []partial

	for _, d := range deals {
		name := normalizeText(d.Name)
		if name == "" {
			continue
		}
		if strings.Contains(normalized, " "+name+" ") {
			whole = append(whole, d)
			continue
		}
		matched := 0
		for _, w := range significantWords(name) {
			if queryWords[w] {
				matched++
			}
		}
		if matched > 0 {
			partials = append(partials, partial{deal: d, matched: matched})
		}
	}

	if len(whole) > 0 {
		sort.Slice(whole, func(i, j int) bool { return whole[i].Name < whole[j].Name })
		return whole
	}

	sort.SliceStable(partials, func(i, j int) bool {
		if partials[i].matched != partials[j].matched {
			return partials[i].matched > partials[j].matched
		}
		return partials[i].deal.Name < partials[j].deal.Name
	})
	matched := make([]domain.Deal, len(partials))
	for i, p := range partials {
		matched[i] = p.deal
	}
	return matched
}

// ResolveDealReference resolves "that deal"-style backreferences by
// scanning prior user turns, most recent first, for an explicit mention.
// Returns nil when the latest message carries no backreference or no prior
// turn names a deal.
func ResolveDealReference(messages []ChatMessage, deals []domain.Deal) *domain.Deal {
	if len(messages) == 0 {
		return nil
	}
	last := normalizeText(messages[len(messages)-1].Content)
	padded := " " + last + " "
	referenced := false
	for _, phrase := range backreferencePhrases {
		if strings.Contains(padded, " "+phrase+" ") {
			referenced = true
			break
		}
	}
	if !referenced {
		return nil
	}

	for i := len(messages) - 2; i >= 0; i-- {
		if !strings.EqualFold(messages[i].Role, "user") {
			continue
		}
		if found := FindMentionedDeals(messages[i].Content, deals); len(found) > 0 {
			d := found[0]
			return &d
		}
	}
	return nil
}
