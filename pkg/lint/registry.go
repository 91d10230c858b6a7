package lint

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registration errors.
var (
	// ErrUnknownRuleID is returned when registering an ID outside the catalogue.
	ErrUnknownRuleID = errors.New("rule id not in catalogue")

	// ErrKindMismatch is returned when a rule does not implement the kind its ID requires.
	ErrKindMismatch = errors.New("rule kind does not match catalogue")
)

// Registry holds the rule implementations of the catalogue.
type Registry struct {
	mu      sync.RWMutex
	byID    map[RuleID]Rule
	byName  map[string]Rule
	aliases map[string]RuleID // lowercased alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[RuleID]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]RuleID),
	}
}

// Register adds a rule, replacing any rule with the same ID.
// The rule's ID must be in the catalogue and the rule must implement
// exactly the kind the catalogue assigns to that ID. Its markdownlint code,
// if any, is registered as an alias.
func (r *Registry) Register(rule Rule) error {
	want := rule.ID().Kind()
	if want == KindUnknown {
		return fmt.Errorf("%w: %s", ErrUnknownRuleID, rule.ID())
	}
	if got := KindOf(rule); got != want {
		return fmt.Errorf("%w: %s is a %s, implementation is %s", ErrKindMismatch, rule.ID(), want, got)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
	if code := rule.Code(); code != "" {
		r.aliases[strings.ToLower(code)] = rule.ID()
	}
	return nil
}

// MustRegister is like Register but panics on error.
// It is meant for init-time registration of built-in rules.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// RegisterAlias maps an extra, case-insensitive alias to a rule ID.
func (r *Registry) RegisterAlias(alias string, id RuleID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = id
}

// Get retrieves a rule by ID.
func (r *Registry) Get(id RuleID) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Resolve returns the rule for a key that is a rule ID, a name, or an alias.
// IDs match case-insensitively.
func (r *Registry) Resolve(key string) (RuleID, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[RuleID(strings.ToUpper(key))]; ok {
		return rule.ID(), rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule.ID(), rule, true
	}
	if id, ok := r.aliases[strings.ToLower(key)]; ok {
		if rule, ok := r.byID[id]; ok {
			return id, rule, true
		}
	}
	return "", nil, false
}

// Rules returns all registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// Missing returns the catalogue IDs with no registered implementation.
func (r *Registry) Missing() []RuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []RuleID
	for _, id := range slices.Concat(FixerOrder, DetectorOrder) {
		if _, ok := r.byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// DefaultRegistry is the global registry for built-in rules.
// The rules package populates it during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
