package chatbot

import "strings"

// Branch names customers can file feedback against.
const (
	BranchMilleniumWalkway = "Millenium Walkway"
	BranchCharlotteWay     = "Charlotte Way"
	BranchDundrum          = "Dundrum Shopping Centre"
	BranchLiffeyValley     = "Liffey Valley Shopping Centre"
)

// locationPattern pairs an input pattern with its canonical branch name.
type locationPattern struct {
	pattern string
	branch  string
}

// locationPatterns is scanned in order and the first substring match wins.
// Overlapping patterns ("walkway" vs "way") therefore resolve by list
// position, not by specificity, so more specific synonyms must be listed
// before shorter ones they contain.
var locationPatterns = []locationPattern{
	{"1", BranchMilleniumWalkway},
	{"millenium", BranchMilleniumWalkway},
	{"millennium", BranchMilleniumWalkway},
	{"walkway", BranchMilleniumWalkway},
	{"2", BranchCharlotteWay},
	{"charlotte", BranchCharlotteWay},
	{"3", BranchDundrum},
	{"dundrum", BranchDundrum},
	{"shopping", BranchDundrum},
	{"4", BranchLiffeyValley},
	{"liffey", BranchLiffeyValley},
	{"valley", BranchLiffeyValley},
}

// resolveLocation maps free text (or an ordinal "1".."4") to a canonical
// branch name. Returns false when nothing matches.
func resolveLocation(normalized string) (string, bool) {
	for _, lp := range locationPatterns {
		if strings.Contains(normalized, lp.pattern) {
			return lp.branch, true
		}
	}
	return "", false
}
