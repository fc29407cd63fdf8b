package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

// Parse maps raw input to an intent for the prompt described by ctx. An intent
// with a non-nil Clarify is not actionable; show the prompt and ask again.
func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command or a number.", Options: choiceOptions(ctx)}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	if len(tokens) == 1 && len(ctx.Choices) > 0 {
		if n, err := strconv.Atoi(tokens[0]); err == nil {
			if n < 1 || n > len(ctx.Choices) {
				intent.Clarify = &ClarifyQuestion{
					Prompt:  fmt.Sprintf("Choose a number from 1 to %d.", len(ctx.Choices)),
					Options: choiceOptions(ctx),
				}
				return intent
			}
			intent.Verb = normaliseInput(ctx.Choices[n-1])
			intent.Kind = commandKind(intent.Verb)
			intent.Confidence = 1
			return intent
		}
	}

	allowed := allowedVerbs(ctx)
	cmdMatch, alternates := p.registry.matchCommand(tokens, allowed)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		if inferred := inferFreeTextIntent(raw, intent.Normalised, allowed); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{Prompt: unknownPrompt(ctx), Options: choiceOptions(ctx)}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	args, q, argScore := resolveArgs(argsTokens)
	intent.Args = args
	intent.Quantity = q
	intent.Confidence = clampScore((cmdMatch.Score * 0.75) + (argScore * 0.25))

	def, _ := p.registry.command(intent.Verb)
	if q != nil && def.MaxArgs == 0 {
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s does not take a number.", def.Canonical)}
		intent.Confidence = 0.42
		return intent
	}
	if len(intent.Args) > 0 {
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that. Please rephrase or pick a number."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "yes", "no":
		return Answer
	default:
		return Command
	}
}

// resolveArgs pulls the first number out of the trailing tokens, drops filler
// words and keeps whatever is left as args.
func resolveArgs(tokens []string) ([]string, *Quantity, float64) {
	if len(tokens) == 0 {
		return nil, nil, 0.9
	}
	score := 0.9
	var q *Quantity
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		if isUnitWord(token) && q != nil {
			q.Unit = "cents"
			continue
		}
		if isFiller(token) {
			continue
		}
		out = append(out, token)
		score -= 0.02
	}
	if len(out) == 0 {
		out = nil
	}
	return out, q, clampScore(score)
}

func allowedVerbs(ctx ParseContext) map[string]bool {
	if len(ctx.Choices) == 0 {
		return nil
	}
	allowed := map[string]bool{"help": true}
	for _, c := range ctx.Choices {
		allowed[normaliseInput(c)] = true
	}
	return allowed
}

func choiceOptions(ctx ParseContext) []Intent {
	options := make([]Intent, 0, len(ctx.Choices))
	for _, c := range ctx.Choices {
		verb := normaliseInput(c)
		options = append(options, Intent{Kind: commandKind(verb), Verb: verb, Normalised: verb, Confidence: 1})
	}
	return options
}

func unknownPrompt(ctx ParseContext) string {
	if len(ctx.Choices) == 0 {
		return "I couldn't map that to a command. Try make, sell, continue, quit or help."
	}
	labels := make([]string, 0, len(ctx.Choices))
	for i, c := range ctx.Choices {
		labels = append(labels, fmt.Sprintf("%d) %s", i+1, c))
	}
	return "Please choose " + strings.Join(labels, ", ") + "."
}

func inferFreeTextIntent(raw string, normalised string, allowed map[string]bool) *Intent {
	n := normalised
	makeIntent := func(verb string, confidence float64) *Intent {
		if allowed != nil && !allowed[verb] {
			return nil
		}
		_, q, _ := resolveArgs(tokenise(n))
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       commandKind(verb),
			Verb:       verb,
			Quantity:   q,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "what can i do", "what are my options", "how do i play") {
		return makeIntent("help", 0.9)
	}
	if containsAnyPhrase(n, "make some", "make more", "squeeze", "stock up", "need more lemonade") || containsWord(n, "make") {
		return makeIntent("make", 0.8)
	}
	if containsAnyPhrase(n, "open the stand", "open up", "set up shop", "charge") || containsWord(n, "sell") {
		return makeIntent("sell", 0.8)
	}
	if containsAnyPhrase(n, "another day", "one more day", "keep playing", "go on") {
		return makeIntent("continue", 0.82)
	}
	if containsAnyPhrase(n, "i m done", "im done", "that s enough", "enough", "give up", "call it a day") {
		return makeIntent("quit", 0.8)
	}
	if containsAnyPhrase(n, "of course", "do it", "i am sure", "i m sure") {
		return makeIntent("yes", 0.78)
	}
	if containsAnyPhrase(n, "not really", "wait", "changed my mind") {
		return makeIntent("no", 0.74)
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	for _, arg := range intent.Args {
		if n := normaliseInput(arg); n != "" {
			args = append(args, n)
		}
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
