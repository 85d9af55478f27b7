package chatbot

import "strings"

// Intent is the classified purpose of one user message.
type Intent string

const (
	IntentMenu     Intent = "MENU"
	IntentHours    Intent = "HOURS"
	IntentLocation Intent = "LOCATION"
	IntentHelp     Intent = "HELP"
	IntentAffirm   Intent = "AFFIRM"
	IntentDeny     Intent = "DENY"
	IntentUnknown  Intent = "UNKNOWN"
)

// intentRule matches when any keyword is a substring of the input. Rules
// are evaluated in declaration order, so earlier rules take priority.
type intentRule struct {
	intent   Intent
	keywords []string
}

// substringRules carry the fixed priority MENU > HOURS > LOCATION > HELP.
var substringRules = []intentRule{
	{IntentMenu, []string{"menu", "food", "eat", "burger", "tenders", "wings", "sides", "fries", "drinks", "1"}},
	{IntentHours, []string{"hour", "time", "open", "close", "schedule", "when", "2"}},
	{IntentLocation, []string{"location", "address", "where", "find", "map", "directions", "3"}},
	{IntentHelp, []string{"help", "4"}},
}

// Affirm/deny vocabularies are matched as whole tokens, not substrings.
var (
	affirmTokens = map[string]struct{}{"yes": {}, "y": {}, "continue": {}}
	denyTokens   = map[string]struct{}{"no": {}, "n": {}, "exit": {}}
)

// Classify maps normalized (lower-cased, trimmed) text to an intent. Pure
// function, no side effects. Inputs matching no rule classify as UNKNOWN.
func Classify(normalized string) Intent {
	if _, ok := affirmTokens[normalized]; ok {
		return IntentAffirm
	}
	if _, ok := denyTokens[normalized]; ok {
		return IntentDeny
	}
	for _, rule := range substringRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.intent
			}
		}
	}
	return IntentUnknown
}
