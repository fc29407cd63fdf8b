package parser

type IntentKind int

const (
	Command IntentKind = iota
	Answer
	Help
	Unknown
)

// Quantity is a number typed alongside a command. Unit is "count" for plain
// numbers and "cents" for prices written with a cent or dollar marker.
type Quantity struct {
	Raw  string
	N    int
	Unit string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext describes the prompt being answered. Choices lists the verbs it
// accepts in menu order; a bare number n selects Choices[n-1].
type ParseContext struct {
	Choices []string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
}
