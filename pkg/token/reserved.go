package token

import "sort"

// entry is one row of the reserved-token table: a canonical lexeme paired
// with the Kind it denotes.
type entry struct {
	lexeme string
	kind   Kind
}

// generalKeywords, typeKeywords and operators are the three tables named
// in spec §4.2. They are built once from kindNames and sorted by lexeme;
// allTokens is their concatenation, also sorted, and backs the table-size
// invariant check. The maximal-munch operator recognizer searches
// operators only.
var (
	generalKeywords []entry
	typeKeywords    []entry
	operators       []entry
	allTokens       []entry

	keywordByLexeme = map[string]Kind{}
)

func init() {
	for k, lexeme := range kindNames {
		e := entry{lexeme: lexeme, kind: k}
		switch {
		case k.IsKeyword():
			generalKeywords = append(generalKeywords, e)
		case k.IsTypeName():
			typeKeywords = append(typeKeywords, e)
		case k.IsOperator():
			operators = append(operators, e)
		default:
			panic("token: kindNames entry with unclassified kind: " + lexeme)
		}
	}

	byLexeme := func(a, b entry) bool { return a.lexeme < b.lexeme }
	sortEntries(generalKeywords, byLexeme)
	sortEntries(typeKeywords, byLexeme)
	sortEntries(operators, byLexeme)

	allTokens = make([]entry, 0, len(generalKeywords)+len(typeKeywords)+len(operators))
	allTokens = append(allTokens, generalKeywords...)
	allTokens = append(allTokens, typeKeywords...)
	allTokens = append(allTokens, operators...)
	sortEntries(allTokens, byLexeme)

	assertSorted(generalKeywords, "generalKeywords")
	assertSorted(typeKeywords, "typeKeywords")
	assertSorted(operators, "operators")
	if want := int(kindCount) - 1; len(allTokens) != want {
		panic("token: reserved table size mismatch: invariant |allTokens| == N_tokens-1 violated")
	}

	for _, e := range generalKeywords {
		keywordByLexeme[e.lexeme] = e.kind
	}
	for _, e := range typeKeywords {
		keywordByLexeme[e.lexeme] = e.kind
	}
}

func sortEntries(es []entry, less func(a, b entry) bool) {
	sort.Slice(es, func(i, j int) bool { return less(es[i], es[j]) })
}

func assertSorted(es []entry, name string) {
	for i := 1; i < len(es); i++ {
		if es[i-1].lexeme >= es[i].lexeme {
			panic("token: " + name + " is not strictly sorted or has a duplicate lexeme")
		}
	}
}

// LookupKeyword returns the Kind for an identifier-shaped lexeme, searching
// the general-keyword and built-in-type-name tables. It returns Unknown if
// lexeme is not reserved, in which case the caller should treat it as a
// plain identifier.
func LookupKeyword(lexeme string) Kind {
	if k, ok := keywordByLexeme[lexeme]; ok {
		return k
	}
	return Unknown
}

// CharSource is the minimal pushback character source the operator
// recognizer needs. *source.Stream (internal/source) satisfies it
// structurally; no import cycle is required.
type CharSource interface {
	Pop() (rune, bool)
	Push(r rune)
}

// OperatorMatch is the result of a maximal-munch operator scan.
type OperatorMatch struct {
	Kind Kind
	Size int // number of characters consumed from src to form Kind's lexeme
}

// LongestOperator finds the longest operator lexeme that prefixes the
// remaining input on src, per spec §4.2: maintain a candidate range over
// the sorted operators table, narrowing it one character at a time, and
// remember the last depth at which the first remaining candidate is
// exactly the characters read so far. Characters read beyond the final match are pushed
// back in reverse order. Returns (match, true) on success, or a zero value
// and false if no operator lexeme prefixes the input (the caller should
// treat that as a tokenizer error; none of the characters read are
// consumed in that case either — they are all pushed back).
func LongestOperator(src CharSource) (OperatorMatch, bool) {
	lo, hi := 0, len(operators)
	var consumed []rune
	best := OperatorMatch{}
	haveMatch := false

	for i := 0; ; i++ {
		c, ok := src.Pop()
		if !ok {
			break
		}
		consumed = append(consumed, c)

		// Narrow [lo, hi) to entries whose i-th character equals c,
		// treating lexemes shorter than i+1 as strictly less than any
		// other candidate at this depth (equal-range search).
		newLo := sort.Search(hi-lo, func(j int) bool {
			return charAt(operators[lo+j].lexeme, i) >= byte(c)
		}) + lo
		newHi := sort.Search(hi-lo, func(j int) bool {
			return charAt(operators[lo+j].lexeme, i) > byte(c)
		}) + lo
		lo, hi = newLo, newHi

		if lo < hi && len(operators[lo].lexeme) == i+1 {
			best = OperatorMatch{Kind: operators[lo].kind, Size: i + 1}
			haveMatch = true
		}

		if lo >= hi {
			break
		}
	}

	// Push back everything consumed beyond the matched size, in reverse
	// order so a subsequent Pop() sees them in original order.
	for i := len(consumed) - 1; i >= best.Size; i-- {
		src.Push(consumed[i])
	}

	return best, haveMatch
}

// charAt returns the byte at index i of s, or 0 (smaller than any lexeme
// byte, all of which are printable ASCII) if s is too short — this is what
// makes "entries shorter than i+1 sort strictly less" fall out of a plain
// byte comparison inside the equal-range search above.
func charAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}
