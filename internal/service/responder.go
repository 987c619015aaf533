package service

import (
	"regexp"
	"strings"
	"time"

	"chatbot/internal/utils"
)

// FallbackRule names the reply given when nothing matches.
const FallbackRule = "fallback"

// ReplyFunc computes a reply at call time.
type ReplyFunc func(now time.Time) string

// Static wraps a fixed reply.
func Static(text string) ReplyFunc {
	return func(time.Time) string { return text }
}

// Rule fires when any of its triggers is a substring of the lowercased input.
type Rule struct {
	Name     string
	Triggers []string
	Reply    ReplyFunc
}

// RegexRule fires when its pattern matches the lowercased input. Regex rules
// are checked before the rule table.
type RegexRule struct {
	Name    string
	Pattern *regexp.Regexp
	Reply   ReplyFunc
}

// Reply is the outcome of matching one input.
type Reply struct {
	Rule string
	Text string
}

// DefaultRegexRules are the two overrides for "what do you do" style questions.
func DefaultRegexRules() []RegexRule {
	return []RegexRule{
		{
			Name:    "purpose_question",
			Pattern: regexp.MustCompile(`\b(work|do)\b.*\b(you)\b`),
			Reply:   Static(utils.PurposeMessage),
		},
		{
			Name:    "purpose_question_mr",
			Pattern: regexp.MustCompile(regexp.QuoteMeta("काय काम करतो")),
			Reply:   Static(utils.PurposeMessage),
		},
	}
}

// DefaultRules is the keyword table. Order matters: triggers overlap
// ("कसा आहेस" is in both greeting and wellbeing) and the first rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "greeting", Triggers: []string{"hello", "hi", "नमस्कार", "कसा आहेस"}, Reply: Static(utils.GreetingMessage)},
		{Name: "wellbeing", Triggers: []string{"how are you", "कसा आहेस"}, Reply: Static(utils.WellbeingMessage)},
		{Name: "help", Triggers: []string{"help", "मदत"}, Reply: Static(utils.HelpMessage)},
		{Name: "purpose", Triggers: []string{"purpose", "capabilities", "work", "उद्देश", "क्षमता"}, Reply: Static(utils.PurposeMessage)},
		{Name: "goodbye", Triggers: []string{"goodbye", "bye", "पुन्हा भेटू"}, Reply: Static(utils.GoodbyeMessage)},
		{Name: "name", Triggers: []string{"name", "what's your name", "what is your name", "नाव", "तुमचं नाव काय आहे"}, Reply: Static(utils.NameMessage)},
		{Name: "date", Triggers: []string{"date", "today's date", "आजची तारीख", "तारीख"}, Reply: utils.BuildDateMessage},
	}
}

// Responder picks exactly one canned reply for a message. It holds no mutable
// state and is safe for concurrent use.
type Responder struct {
	regexRules []RegexRule
	rules      []Rule
	fallback   string
	now        func() time.Time
}

// ResponderOption customizes a Responder.
type ResponderOption func(*Responder)

// WithClock sets the time source used by dynamic replies.
func WithClock(now func() time.Time) ResponderOption {
	return func(r *Responder) { r.now = now }
}

// WithRules replaces the rule table.
func WithRules(rules []Rule) ResponderOption {
	return func(r *Responder) { r.rules = rules }
}

// WithRegexRules replaces the regex overrides.
func WithRegexRules(rules []RegexRule) ResponderOption {
	return func(r *Responder) { r.regexRules = rules }
}

// NewResponder builds a Responder over the default tables.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		regexRules: DefaultRegexRules(),
		rules:      DefaultRules(),
		fallback:   utils.FallbackMessage,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond returns the reply text for input. It never returns an empty string.
func (r *Responder) Respond(input string) string {
	return r.Match(input).Text
}

// Match returns the winning rule and its reply.
func (r *Responder) Match(input string) Reply {
	text := strings.ToLower(input)

	for _, rr := range r.regexRules {
		if rr.Pattern.MatchString(text) {
			return r.reply(rr.Name, rr.Reply)
		}
	}

	for _, rule := range r.rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(text, trigger) {
				return r.reply(rule.Name, rule.Reply)
			}
		}
	}

	return Reply{Rule: FallbackRule, Text: r.fallback}
}

func (r *Responder) reply(name string, fn ReplyFunc) Reply {
	text := fn(r.now())
	if text == "" {
		return Reply{Rule: FallbackRule, Text: r.fallback}
	}
	return Reply{Rule: name, Text: text}
}
