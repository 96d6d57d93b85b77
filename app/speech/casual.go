package speech

import "regexp"

// CasualKind classifies small talk that gets a canned reply instead of a
// retrieval round-trip.
type CasualKind string

const (
	CasualGreeting   CasualKind = "greeting"
	CasualHowAreYou  CasualKind = "how_are_you"
	CasualThanks     CasualKind = "thanks"
	CasualGoodbye    CasualKind = "goodbye"
	CasualCapability CasualKind = "capability"
)

var casualPatterns = []struct {
	kind CasualKind
	re   *regexp.Regexp
}{
	{CasualGreeting, regexp.MustCompile(`(?i)\b(hi|hello|hey|good morning|good afternoon|good evening)\b`)},
	{CasualHowAreYou, regexp.MustCompile(`(?i)\b(how are you|what'?s up|how'?s it going)\b`)},
	{CasualThanks, regexp.MustCompile(`(?i)\b(thank you|thanks)\b`)},
	{CasualGoodbye, regexp.MustCompile(`(?i)\b(bye|goodbye)\b`)},
	{CasualCapability, regexp.MustCompile(`(?i)\b(what can you do|help me|what do you know)\b`)},
}

// Classify reports whether text is small talk and which kind. Order matters:
// "thanks, bye!" counts as thanks, mirroring the first-match behavior the
// assistant has always had.
func Classify(text string) (CasualKind, bool) {
	for _, p := range casualPatterns {
		if p.re.MatchString(text) {
			return p.kind, true
		}
	}
	return "", false
}

var cannedReplies = map[CasualKind]string{
	CasualGreeting:   "Hey there! I'm Nexi your SRM buddy. What do you wanna know about campus?",
	CasualHowAreYou:  "I'm awesome thanks! Ready to help you with anything about SRM. What's on your mind?",
	CasualThanks:     "No problem! Always happy to help a fellow student. Ask me anything else!",
	CasualGoodbye:    "See ya later! Come back anytime you need help with university stuff!",
	CasualCapability: "I know tons about SRM like hostels fees classes library and campus life. What interests you most?",
}

// CannedReply returns the spoken reply for a casual utterance. Unknown kinds
// fall back to the capability pitch.
func CannedReply(kind CasualKind) string {
	if reply, ok := cannedReplies[kind]; ok {
		return reply
	}
	return cannedReplies[CasualCapability]
}
