package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SubjectKind classifies what a caller is asking about.
type SubjectKind string

// Available subject kinds.
const (
	// SubjectSkill is a named skill or technology (e.g. "Docker").
	SubjectSkill SubjectKind = "skill"

	// SubjectRole is a target job role (e.g. "Data Engineer").
	SubjectRole SubjectKind = "role"

	// SubjectFreeText is an arbitrary phrase with no special handling.
	SubjectFreeText SubjectKind = "free_text"
)

// IsValid returns true if the kind is recognised.
func (k SubjectKind) IsValid() bool {
	switch k {
	case SubjectSkill, SubjectRole, SubjectFreeText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SubjectKind) String() string {
	return string(k)
}

// ParseSubjectKind parses a kind name. An empty string means skill.
func ParseSubjectKind(s string) (SubjectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skill":
		return SubjectSkill, nil
	case "role":
		return SubjectRole, nil
	case "free_text", "freetext", "free-text", "text":
		return SubjectFreeText, nil
	default:
		return "", fmt.Errorf("%w: subject kind %q", ErrUnsupportedType, s)
	}
}

// stopWords are dropped from subject keywords.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "how": true, "in": true,
	"into": true, "is": true, "it": true, "of": true, "on": true, "or": true,
	"the": true, "to": true, "with": true, "what": true, "your": true,
	"using": true, "via": true, "about": true, "basics": true, "intro": true,
	"introduction": true, "advanced": true, "beginner": true, "beginners": true,
}

// minKeywordLength is exclusive: keywords must be longer than this.
const minKeywordLength = 2

// SubjectQuery is a normalised request for learning material.
// It is immutable once constructed by NewSubjectQuery.
type SubjectQuery struct {
	rawText        string
	kind           SubjectKind
	text           string
	keywords       []string
	domainCategory string
}

// NewSubjectQuery normalises raw text into a SubjectQuery.
// Returns ErrInvalidInput when raw contains no usable tokens.
func NewSubjectQuery(raw string, kind SubjectKind) (SubjectQuery, error) {
	if !kind.IsValid() {
		return SubjectQuery{}, fmt.Errorf("%w: subject kind %q", ErrUnsupportedType, kind)
	}

	text := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if text == "" {
		return SubjectQuery{}, fmt.Errorf("%w: empty subject", ErrInvalidInput)
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return SubjectQuery{}, fmt.Errorf("%w: subject %q has no searchable terms", ErrInvalidInput, raw)
	}

	keywords := make([]string, 0, len(tokens))
	short := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		if len(tok) > minKeywordLength {
			keywords = append(keywords, tok)
		} else {
			short = append(short, tok)
		}
	}

	// Subjects like "Go", "R" or "C" would otherwise have no keywords at all.
	if len(keywords) == 0 {
		keywords = short
	}
	if len(keywords) == 0 {
		return SubjectQuery{}, fmt.Errorf("%w: subject %q has only stop words", ErrInvalidInput, raw)
	}

	return SubjectQuery{
		rawText:        raw,
		kind:           kind,
		text:           text,
		keywords:       keywords,
		domainCategory: InferDomainCategory(text, keywords),
	}, nil
}

// RawText returns the caller's original text.
func (q SubjectQuery) RawText() string { return q.rawText }

// Kind returns the subject kind.
func (q SubjectQuery) Kind() SubjectKind { return q.kind }

// Text returns the lowercase, whitespace-collapsed subject text.
func (q SubjectQuery) Text() string { return q.text }

// Keywords returns a copy of the normalised keyword set, in input order.
func (q SubjectQuery) Keywords() []string {
	out := make([]string, len(q.keywords))
	copy(out, q.keywords)
	return out
}

// IsCompound reports whether the subject has more than one keyword.
func (q SubjectQuery) IsCompound() bool { return len(q.keywords) > 1 }

// DomainCategory returns the inferred category name, or "" when none applies.
func (q SubjectQuery) DomainCategory() string { return q.domainCategory }

// Tokenize splits lowercase text into word tokens. Letters and digits form
// tokens; '+', '#' and '.' are kept when they sit inside or at the end of a
// token so that "c++", "c#" and "node.js" survive intact.
func Tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder

	flush := func() {
		tok := strings.TrimRight(cur.String(), ".")
		if tok != "" {
			tokens = append(tokens, tok)
		}
		cur.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(unicode.ToLower(r))
		case (r == '+' || r == '#' || r == '.') && cur.Len() > 0:
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// ContainsTerm reports whether term occurs in text. Every match must begin
// a word, so "rest" does not match "interesting" and "git" does not match
// "digital". Terms of two characters or fewer must also end a word,
// otherwise "go" would match "golang" and "r" nearly everything. Longer
// terms may be followed by more letters: "api" matches "apis".
func ContainsTerm(text, term string) bool {
	return CountTerm(text, term) > 0
}

// CountTerm counts non-overlapping occurrences of term in text using the
// same rules as ContainsTerm.
func CountTerm(text, term string) int {
	if term == "" {
		return 0
	}
	whole := len(term) <= minKeywordLength

	count := 0
	for i := 0; i < len(text); {
		idx := strings.Index(text[i:], term)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(term)
		if startsWord(text, start) && (!whole || endsWord(text, end)) {
			count++
			i = end
			continue
		}
		i = start + 1
	}
	return count
}

// startsWord reports whether position i is not preceded by a word rune.
func startsWord(text string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

// endsWord reports whether position i is not followed by a word rune.
func endsWord(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}
