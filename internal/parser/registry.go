package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

// Registry maps canonical verbs and their aliases to command definitions.
type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	for _, alias := range append([]string{c.Canonical}, c.Aliases...) {
		n := normaliseInput(alias)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

type commandCandidate struct {
	Canonical string
	Consumed  int
	Score     float64
}

// matchCommand scores every phrase against the leading tokens. Exact hits
// score 1 (0.97 for aliases), single-word prefixes 0.9, and near misses within
// the levenshtein limit 0.72 minus 0.08 per edit. When allowed is non-nil only
// its verbs are considered.
func (r *Registry) matchCommand(tokens []string, allowed map[string]bool) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 || (allowed != nil && !allowed[phrase.canonical]) {
			continue
		}
		if c, ok := scorePhrase(phrase, tokens); ok {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	best := cands[0]
	alts := make([]commandCandidate, 0, 2)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
	}
	return best, alts
}

func scorePhrase(phrase commandPhrase, tokens []string) (commandCandidate, bool) {
	consumed := min(len(tokens), len(phrase.tokens))
	prefix := strings.Join(tokens[:consumed], " ")
	c := commandCandidate{Canonical: phrase.canonical, Consumed: consumed}

	switch {
	case consumed == len(phrase.tokens) && prefix == phrase.alias:
		c.Score = 1.0
		if phrase.alias != phrase.canonical {
			c.Score = 0.97
		}
		return c, true
	case len(phrase.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(phrase.alias, tokens[0]):
		c.Consumed = 1
		c.Score = 0.9
		return c, true
	}

	if len(prefix) < 3 {
		return c, false
	}
	dist := levenshtein.ComputeDistance(prefix, phrase.alias)
	if dist > levenshteinLimit(len(phrase.alias)) {
		return c, false
	}
	c.Score = 0.72 - (0.08 * float64(dist))
	if phrase.alias != phrase.canonical {
		c.Score += 0.03
	}
	return c, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "options"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "help"},
		{Canonical: "make", Aliases: []string{"produce", "brew", "mix", "make lemonade", "make cups"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "make"},
		{Canonical: "sell", Aliases: []string{"vend", "sell lemonade", "sell cups", "open stand"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "sell"},
		{Canonical: "continue", Aliases: []string{"c", "next", "next day", "play on", "keep going"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "continue"},
		{Canonical: "quit", Aliases: []string{"q", "exit", "stop", "end game"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "quit"},
		{Canonical: "yes", Aliases: []string{"y", "yeah", "yep", "sure"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "yes"},
		{Canonical: "no", Aliases: []string{"n", "nope", "nah"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "no"},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
