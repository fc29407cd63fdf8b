package parser

import "testing"

var (
	actionCtx   = ParseContext{Choices: []string{"make", "sell"}}
	continueCtx = ParseContext{Choices: []string{"continue", "quit"}}
	confirmCtx  = ParseContext{Choices: []string{"yes", "no"}}
)

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  SELL  ", want: "sell"},
		{in: "make-5   CUPS!!", want: "make 5 cups"},
		{in: "sell at $0.25.", want: "sell at $0.25"},
		{in: "I'm done", want: "i m done"},
		{in: "sell -25c", want: "sell -25c"},
		{in: "make - 5", want: "make 5"},
	}
	for _, tc := range tests {
		got := normaliseInput(tc.in)
		if got != tc.want {
			t.Fatalf("normaliseInput(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestNumericChoiceSelectsVerb(t *testing.T) {
	p := New()
	tests := []struct {
		ctx  ParseContext
		in   string
		want string
	}{
		{ctx: actionCtx, in: "1", want: "make"},
		{ctx: actionCtx, in: " 2 ", want: "sell"},
		{ctx: continueCtx, in: "1", want: "continue"},
		{ctx: continueCtx, in: "2", want: "quit"},
		{ctx: confirmCtx, in: "1", want: "yes"},
	}
	for _, tc := range tests {
		intent := p.Parse(tc.ctx, tc.in)
		if intent.Clarify != nil {
			t.Fatalf("%q: unexpected clarify %+v", tc.in, intent.Clarify)
		}
		if intent.Verb != tc.want {
			t.Fatalf("%q: verb=%q want=%q", tc.in, intent.Verb, tc.want)
		}
	}
}

func TestNumericChoiceOutOfRangeClarifies(t *testing.T) {
	p := New()
	for _, in := range []string{"0", "3", "12", "-1"} {
		intent := p.Parse(actionCtx, in)
		if intent.Clarify == nil {
			t.Fatalf("%q: expected clarify for out-of-range choice", in)
		}
		if len(intent.Clarify.Options) != 2 {
			t.Fatalf("%q: expected both choices offered, got %d", in, len(intent.Clarify.Options))
		}
	}
}

func TestTypedCommandCarriesQuantity(t *testing.T) {
	p := New()
	tests := []struct {
		in   string
		verb string
		n    int
		unit string
	}{
		{in: "make 5", verb: "make", n: 5, unit: "count"},
		{in: "mak 7 cups", verb: "make", n: 7, unit: "count"},
		{in: "brew 3", verb: "make", n: 3, unit: "count"},
		{in: "sell 25c", verb: "sell", n: 25, unit: "cents"},
		{in: "sell at 40 cents each", verb: "sell", n: 40, unit: "cents"},
		{in: "sel for $0.35", verb: "sell", n: 35, unit: "cents"},
		{in: "sell lemonade at 0", verb: "sell", n: 0, unit: "count"},
		{in: "sell -1", verb: "sell", n: -1, unit: "count"},
		{in: "make -5", verb: "make", n: -5, unit: "count"},
		{in: "sell -25c", verb: "sell", n: -25, unit: "cents"},
	}
	for _, tc := range tests {
		intent := p.Parse(actionCtx, tc.in)
		if intent.Clarify != nil {
			t.Fatalf("%q: unexpected clarify %+v", tc.in, intent.Clarify)
		}
		if intent.Verb != tc.verb {
			t.Fatalf("%q: verb=%q want=%q", tc.in, intent.Verb, tc.verb)
		}
		if intent.Quantity == nil || intent.Quantity.N != tc.n || intent.Quantity.Unit != tc.unit {
			t.Fatalf("%q: quantity=%+v want n=%d unit=%s", tc.in, intent.Quantity, tc.n, tc.unit)
		}
	}
}

func TestTypoContinueMapsToContinue(t *testing.T) {
	p := New()
	intent := p.Parse(continueCtx, "contnue")
	if intent.Verb != "continue" {
		t.Fatalf("expected continue verb, got %q", intent.Verb)
	}
	if intent.Confidence < 0.6 {
		t.Fatalf("expected decent confidence for typo correction, got %.2f", intent.Confidence)
	}
}

func TestAliasesResolve(t *testing.T) {
	p := New()
	tests := []struct {
		ctx  ParseContext
		in   string
		want string
	}{
		{ctx: continueCtx, in: "q", want: "quit"},
		{ctx: continueCtx, in: "exit", want: "quit"},
		{ctx: continueCtx, in: "next day", want: "continue"},
		{ctx: confirmCtx, in: "y", want: "yes"},
		{ctx: confirmCtx, in: "nope", want: "no"},
		{ctx: actionCtx, in: "produce", want: "make"},
	}
	for _, tc := range tests {
		intent := p.Parse(tc.ctx, tc.in)
		if intent.Verb != tc.want || intent.Clarify != nil {
			t.Fatalf("%q: verb=%q clarify=%+v want=%q", tc.in, intent.Verb, intent.Clarify, tc.want)
		}
	}
}

func TestVerbOutsideChoicesClarifies(t *testing.T) {
	p := New()
	intent := p.Parse(actionCtx, "quit")
	if intent.Clarify == nil {
		t.Fatalf("expected quit to be rejected at the action prompt, got verb %q", intent.Verb)
	}
	if intent.Clarify.Prompt != "Please choose 1) make, 2) sell." {
		t.Fatalf("unexpected prompt %q", intent.Clarify.Prompt)
	}
}

func TestHelpAlwaysAllowed(t *testing.T) {
	p := New()
	intent := p.Parse(actionCtx, "help")
	if intent.Kind != Help || intent.Clarify != nil {
		t.Fatalf("expected help intent, got %+v", intent)
	}
}

func TestNumberOnVerbWithoutArgsClarifies(t *testing.T) {
	p := New()
	intent := p.Parse(continueCtx, "quit 3")
	if intent.Clarify == nil {
		t.Fatalf("expected clarify for quit with a number")
	}
}

func TestFreeTextInference(t *testing.T) {
	p := New()
	intent := p.Parse(actionCtx, "i want to make 6 cups please")
	if intent.Verb != "make" {
		t.Fatalf("expected make inference, got %q", intent.Verb)
	}
	if intent.Quantity == nil || intent.Quantity.N != 6 {
		t.Fatalf("expected quantity 6, got %+v", intent.Quantity)
	}

	intent = p.Parse(continueCtx, "I'm done")
	if intent.Verb != "quit" {
		t.Fatalf("expected quit inference, got %q", intent.Verb)
	}
}

func TestFreeTextRespectsChoices(t *testing.T) {
	p := New()
	intent := p.Parse(confirmCtx, "i want to make lemonade")
	if intent.Clarify == nil {
		t.Fatalf("expected make to be rejected at a yes/no prompt, got %q", intent.Verb)
	}
}

func TestEmptyInputClarifies(t *testing.T) {
	p := New()
	intent := p.Parse(actionCtx, "   ")
	if intent.Clarify == nil || len(intent.Clarify.Options) != 2 {
		t.Fatalf("expected clarify with options for empty input, got %+v", intent.Clarify)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		unit string
		ok   bool
	}{
		{in: "7", n: 7, unit: "count", ok: true},
		{in: " 25c ", n: 25, unit: "cents", ok: true},
		{in: "25 cents", n: 25, unit: "cents", ok: true},
		{in: "$0.5", n: 50, unit: "cents", ok: true},
		{in: "$1", n: 100, unit: "cents", ok: true},
		{in: "10 cups", n: 10, unit: "count", ok: true},
		{in: "-1", ok: false},
		{in: "ten", ok: false},
		{in: "$0.255", ok: false},
		{in: "$", ok: false},
		{in: "$.", ok: false},
		{in: "$-1", ok: false},
		{in: "$.5", n: 50, unit: "cents", ok: true},
		{in: "", ok: false},
		{in: "5 6", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseAmount(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseAmount(%q) ok=%v want=%v", tc.in, ok, tc.ok)
		}
		if ok && (got.N != tc.n || got.Unit != tc.unit) {
			t.Fatalf("ParseAmount(%q)=%+v want n=%d unit=%s", tc.in, got, tc.n, tc.unit)
		}
	}
}

func TestIntentToCommandString(t *testing.T) {
	p := New()
	if got := IntentToCommandString(p.Parse(actionCtx, "Sell 25c")); got != "sell 25c" {
		t.Fatalf("unexpected command string %q", got)
	}
	if got := IntentToCommandString(Intent{}); got != "" {
		t.Fatalf("expected empty string for empty intent, got %q", got)
	}
}
