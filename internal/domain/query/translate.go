package query

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/stringdex/internal/domain"
	"github.com/kailas-cloud/stringdex/internal/domain/predicate"
)

// MaxPhraseLen is the maximum accepted natural-language phrase length in bytes.
const MaxPhraseLen = 512

// vocabTokens holds each vocabulary phrase pre-split into tokens, aligned
// with the vocabulary slice by index.
var vocabTokens = func() [][]string {
	out := make([][]string, len(vocabulary))
	for i, e := range vocabulary {
		out[i] = strings.Fields(e.phrase)
	}
	return out
}()

// item is one recognized unit produced by the scanner.
type item struct {
	ent     *entry
	isNum   bool
	num     int
	operand string // kindContains: the character following the phrase
	pos     int    // first token index, for remainder reporting
}

// Translate parses a natural-language phrase into predicates using the
// bounded vocabulary. Clauses joined by "and" become separate predicates.
// Translation fails closed: anything outside the grammar yields an
// UnrecognizedQueryError carrying the unparsed remainder, never a guess
// or a silently dropped clause.
func Translate(phrase string) ([]predicate.Predicate, error) {
	if len(phrase) > MaxPhraseLen {
		return nil, domain.NewValidationError("query", "phrase too long (max "+strconv.Itoa(MaxPhraseLen)+" bytes)")
	}

	tokens := normalize(phrase)
	if len(tokens) == 0 {
		return nil, domain.NewUnrecognizedQuery(phrase)
	}

	items, err := scan(tokens)
	if err != nil {
		return nil, err
	}

	return assemble(tokens, items)
}

// normalize lowercases the phrase, maps punctuation to spaces, and splits
// into whitespace-collapsed tokens.
func normalize(phrase string) []string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case r == ',' || r == '.' || r == '?' || r == '!' || r == ';' || r == ':' || r == '-':
			return ' '
		default:
			return unicode.ToLower(r)
		}
	}, phrase)
	return strings.Fields(mapped)
}

// scan walks the token stream matching the longest vocabulary phrase at
// each position; ties go to the earlier-declared entry. Integer literals
// and noise words fill the gaps. Any other token fails the scan.
func scan(tokens []string) ([]item, error) {
	items := make([]item, 0, len(tokens))

	for i := 0; i < len(tokens); {
		if ent, n := matchAt(tokens, i); ent != nil {
			it := item{ent: ent, pos: i}
			i += n
			if ent.kind == kindContains {
				if i >= len(tokens) {
					return nil, domain.NewUnrecognizedQuery(ent.phrase)
				}
				it.operand = tokens[i]
				i++
			}
			items = append(items, it)
			continue
		}

		if n, err := strconv.Atoi(tokens[i]); err == nil {
			items = append(items, item{isNum: true, num: n, pos: i})
			i++
			continue
		}

		if noiseWords[tokens[i]] {
			i++
			continue
		}

		return nil, domain.NewUnrecognizedQuery(strings.Join(tokens[i:], " "))
	}

	return items, nil
}

// matchAt returns the vocabulary entry whose phrase matches the longest
// token run starting at pos, or nil. Earlier entries win length ties.
func matchAt(tokens []string, pos int) (*entry, int) {
	var best *entry
	bestLen := 0

	for i := range vocabulary {
		pt := vocabTokens[i]
		if len(pt) <= bestLen || pos+len(pt) > len(tokens) {
			continue
		}
		matched := true
		for j, w := range pt {
			if tokens[pos+j] != w {
				matched = false
				break
			}
		}
		if matched {
			best = &vocabulary[i]
			bestLen = len(pt)
		}
	}

	return best, bestLen
}

// clause accumulates the pieces of one conjunct between "and" connectors.
type clause struct {
	cmp      *entry
	num      int
	hasNum   bool
	prop     predicate.Property
	emitted  bool
	startPos int
}

// assemble folds scanned items into predicates, one clause at a time.
func assemble(tokens []string, items []item) ([]predicate.Predicate, error) {
	preds := make([]predicate.Predicate, 0, 4)
	cl := clause{}

	remainder := func(from, to int) string {
		if to > len(tokens) {
			to = len(tokens)
		}
		return strings.Join(tokens[from:to], " ")
	}

	flush := func(endPos int) error {
		out, err := cl.finalize(remainder(cl.startPos, endPos))
		if err != nil {
			return err
		}
		preds = append(preds, out...)
		cl = clause{startPos: endPos}
		return nil
	}

	for _, it := range items {
		if it.isNum {
			if cl.hasNum {
				return nil, domain.NewUnrecognizedQuery(remainder(cl.startPos, len(tokens)))
			}
			cl.num, cl.hasNum = it.num, true
			continue
		}

		switch it.ent.kind {
		case kindAnd:
			if err := flush(it.pos); err != nil {
				return nil, err
			}
			cl.startPos = it.pos + 1
		case kindOr:
			return nil, domain.NewUnrecognizedQuery(remainder(it.pos, len(tokens)))
		case kindBool:
			preds = append(preds, predicate.NewBool(it.ent.boolVal))
			cl.emitted = true
		case kindDirect:
			p, err := predicate.NewNumeric(it.ent.property, it.ent.cmp, it.ent.number)
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
			cl.emitted = true
		case kindContains:
			p, err := predicate.NewContains(it.operand)
			if err != nil {
				return nil, domain.NewUnrecognizedQuery(it.operand)
			}
			preds = append(preds, p)
			cl.emitted = true
		case kindCompare:
			if cl.cmp != nil {
				return nil, domain.NewUnrecognizedQuery(remainder(cl.startPos, len(tokens)))
			}
			cl.cmp = it.ent
		case kindProperty:
			if cl.prop != "" && cl.prop != it.ent.property {
				return nil, domain.NewUnrecognizedQuery(remainder(cl.startPos, len(tokens)))
			}
			cl.prop = it.ent.property
		}
	}

	if err := flush(len(tokens)); err != nil {
		return nil, err
	}

	if len(preds) == 0 {
		return nil, domain.NewUnrecognizedQuery(strings.Join(tokens, " "))
	}
	if len(preds) > predicate.MaxPredicates {
		return nil, domain.NewValidationError("query", "too many clauses (max "+strconv.Itoa(predicate.MaxPredicates)+")")
	}
	return preds, nil
}

// finalize closes a clause: a pending comparator needs a number and a
// property (explicit, or implied by the comparator phrase); a number or a
// property left dangling means the clause was not fully understood.
func (cl *clause) finalize(clauseText string) ([]predicate.Predicate, error) {
	if cl.cmp == nil {
		// No comparison pending: a leftover number or property means the
		// clause was not fully understood, and a clause that produced
		// nothing at all is noise.
		if cl.hasNum || cl.prop != "" || !cl.emitted {
			return nil, domain.NewUnrecognizedQuery(clauseText)
		}
		return nil, nil
	}

	if !cl.hasNum {
		return nil, domain.NewUnrecognizedQuery(clauseText)
	}
	prop := cl.prop
	if prop == "" {
		prop = cl.cmp.implied
	}
	if prop == "" {
		return nil, domain.NewUnrecognizedQuery(clauseText)
	}
	p, err := predicate.NewNumeric(prop, cl.cmp.cmp, cl.num)
	if err != nil {
		return nil, domain.NewUnrecognizedQuery(clauseText)
	}
	return []predicate.Predicate{p}, nil
}
