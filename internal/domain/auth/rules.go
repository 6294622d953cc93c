package auth

import "strings"

// Decision is the outcome of evaluating a request against the rule set.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Request carries the request attributes the rule set matches on.
type Request struct {
	Path   string
	Method string
}

// PredicateKind selects how a matching rule decides.
type PredicateKind int

const (
	// PermitAll allows the request unconditionally.
	PermitAll PredicateKind = iota
	// AnonymousOnly allows the request only when no session is attached.
	AnonymousOnly
	// RequiresRole allows the request when the session's expanded role set
	// contains the rule's role.
	RequiresRole
	// Custom delegates the decision to the rule's predicate function.
	Custom
	// DenyAll denies the request unconditionally.
	DenyAll
)

// Predicate is a pluggable access check over the session (nil when the
// request is anonymous) and the request attributes.
type Predicate func(s *Session, req Request) bool

// Rule is one ordered entry of the access rule set. Path matches exactly,
// or by prefix when it ends with "/". An empty Method matches any method.
type Rule struct {
	Path      string
	Method    string
	Kind      PredicateKind
	Role      Role
	Predicate Predicate
}

func (r Rule) matches(req Request) bool {
	if r.Method != "" && r.Method != req.Method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") && r.Path != "/" {
		return strings.HasPrefix(req.Path, r.Path)
	}
	return r.Path == req.Path
}

func (r Rule) evaluate(s *Session, req Request) Decision {
	switch r.Kind {
	case PermitAll:
		return Allow
	case AnonymousOnly:
		if s == nil {
			return Allow
		}
		return Deny
	case RequiresRole:
		if s != nil && Expand(s.Role)[r.Role] {
			return Allow
		}
		return Deny
	case Custom:
		if r.Predicate != nil && r.Predicate(s, req) {
			return Allow
		}
		return Deny
	case DenyAll:
		return Deny
	default:
		return Deny
	}
}

// Ruleset is an ordered list of access rules, fixed at startup and
// immutable thereafter. Rules are evaluated in declaration order; the
// first matching rule is authoritative and anything unmatched is denied.
type Ruleset struct {
	rules []Rule
}

// NewRuleset copies rules into an immutable Ruleset.
func NewRuleset(rules ...Rule) *Ruleset {
	rs := &Ruleset{rules: make([]Rule, len(rules))}
	copy(rs.rules, rules)
	return rs
}

// Decide maps a request and its session (nil for anonymous) to a Decision.
func (rs *Ruleset) Decide(req Request, s *Session) Decision {
	for _, rule := range rs.rules {
		if rule.matches(req) {
			return rule.evaluate(s, req)
		}
	}
	return Deny
}

// DirectAdmin is the custom predicate guarding the administrative area:
// it requires a session whose role is exactly admin, not one merely
// derived through the hierarchy. Richer checks (geo, usage counts) can
// replace it without touching the engine.
func DirectAdmin(s *Session, _ Request) bool {
	return s != nil && s.Role == RoleAdmin
}
