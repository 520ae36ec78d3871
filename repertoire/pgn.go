package repertoire

import (
	"fmt"
	"regexp"
	"strings"
)

// rawGame is one game or study chapter: its optional FEN start position and
// the flattened movetext.
type rawGame struct {
	fen      string
	movetext string
}

var tagRe = regexp.MustCompile(`^\[(\w+)\s+"(.*)"\]$`)

// splitGames cuts a PGN stream into games. A tag section starts a new game;
// games without movetext are dropped.
func splitGames(input string) []rawGame {
	var games []rawGame
	var cur rawGame
	var body strings.Builder

	flush := func() {
		cur.movetext = strings.TrimSpace(body.String())
		if cur.movetext != "" {
			games = append(games, cur)
		}
		cur = rawGame{}
		body.Reset()
	}

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := tagRe.FindStringSubmatch(trimmed); m != nil {
			if body.Len() > 0 {
				flush()
			}
			if strings.EqualFold(m[1], "FEN") {
				cur.fen = m[2]
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		body.WriteString(trimmed)
		body.WriteByte('\n')
	}
	flush()
	return games
}

// tokenize splits movetext into SAN tokens and variation parentheses,
// discarding brace and semicolon comments and numeric annotation glyphs.
func tokenize(movetext string) []string {
	var tokens []string
	for i := 0; i < len(movetext); {
		c := movetext[i]
		switch {
		case c == '{':
			end := strings.IndexByte(movetext[i:], '}')
			if end < 0 {
				return tokens
			}
			i += end + 1
		case c == ';':
			end := strings.IndexByte(movetext[i:], '\n')
			if end < 0 {
				return tokens
			}
			i += end + 1
		case c == '(' || c == ')':
			tokens = append(tokens, string(c))
			i++
		case c == '$':
			i++
			for i < len(movetext) && movetext[i] >= '0' && movetext[i] <= '9' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		default:
			j := i
			for j < len(movetext) && !strings.ContainsRune(" \t\n\r(){};", rune(movetext[j])) {
				j++
			}
			tokens = append(tokens, movetext[i:j])
			i = j
		}
	}
	return tokens
}

// moveTokens keeps parentheses and SAN moves, dropping move numbers, game
// results and annotation suffixes ("e4!?" becomes "e4").
func moveTokens(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok == "(" || tok == ")" {
			out = append(out, tok)
			continue
		}
		san := cleanSAN(tok)
		if isMove(san) {
			out = append(out, san)
		}
	}
	return out
}

// cleanSAN strips a glued move-number prefix ("1.e4", "3...Nf6") and
// trailing annotation glyphs.
func cleanSAN(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i > 0 {
		j := i
		for j < len(tok) && tok[j] == '.' {
			j++
		}
		if j > i {
			tok = tok[j:]
		}
	}
	return strings.TrimRight(tok, "!?")
}

func isMove(tok string) bool {
	switch tok {
	case "", "*", "1-0", "0-1", "1/2-1/2":
		return false
	}
	if strings.Trim(tok, ".") == "" {
		return false
	}
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i > 0 && strings.Trim(tok[i:], ".") == "" {
		return false // a bare move number such as "1." or "12"
	}
	return true
}

// expandVariations flattens a tokenized movetext into one SAN line per
// variation. A parenthesized variation is an alternative to the move
// directly before it, so each expanded line is the mainline prefix up to
// that move plus the variation's own moves. The mainline comes first.
func expandVariations(tokens []string) ([][]string, error) {
	var main []string
	var variations [][]string

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "(":
			depth := 1
			j := i + 1
			for ; j < len(tokens) && depth > 0; j++ {
				switch tokens[j] {
				case "(":
					depth++
				case ")":
					depth--
				}
			}
			if depth != 0 {
				return nil, fmt.Errorf("unbalanced variation")
			}
			sub, err := expandVariations(tokens[i+1 : j-1])
			if err != nil {
				return nil, err
			}
			prefix := main
			if len(prefix) > 0 {
				prefix = prefix[:len(prefix)-1]
			}
			for _, line := range sub {
				full := make([]string, 0, len(prefix)+len(line))
				full = append(full, prefix...)
				full = append(full, line...)
				variations = append(variations, full)
			}
			i = j - 1
		case ")":
			return nil, fmt.Errorf("unbalanced variation")
		default:
			main = append(main, tokens[i])
		}
	}
	return append([][]string{main}, variations...), nil
}
