// Package dashboard holds the signed-in area: which section is active, the sidebar
// that changes it, and the main content that renders exactly one section view.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Section is one of the mutually exclusive dashboard views.
type Section string

const (
	Accounts     Section = "accounts"
	Transactions Section = "transactions"
	Loan         Section = "loan"
	Bills        Section = "bills" // branch and ATM map
	Exchange     Section = "exchange"
	Security     Section = "security"
)

// Default is the section shown when the dashboard is opened.
const Default = Accounts

// Sections lists every section in sidebar order.
var Sections = []Section{Accounts, Transactions, Loan, Bills, Exchange, Security}

var (
	// ErrUnknownSection is returned for values outside Sections.
	ErrUnknownSection = errors.New("unknown dashboard section")
	// ErrNoProvider is returned when section state is read outside the dashboard provider.
	ErrNoProvider = errors.New("dashboard state used outside of its provider")
)

// ParseSection converts s into a Section.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// State is the active-section container for one dashboard.
type State struct {
	mu       sync.RWMutex
	active   Section
	onChange func(Section)
}

// NewState creates a state starting at initial, or at Default when initial is not a section.
func NewState(initial Section) *State {
	if _, err := ParseSection(string(initial)); err != nil {
		initial = Default
	}
	return &State{active: initial}
}

// Active returns the active section.
func (s *State) Active() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive changes the active section.
func (s *State) SetActive(sec Section) error {
	if _, err := ParseSection(string(sec)); err != nil {
		return err
	}
	s.set(sec)
	return nil
}

// Reset returns to the default section.
func (s *State) Reset() {
	s.set(Default)
}

func (s *State) set(sec Section) {
	s.mu.Lock()
	changed := s.active != sec
	s.active = sec
	onChange := s.onChange
	s.mu.Unlock()

	if changed && onChange != nil {
		onChange(sec)
	}
}

type stateKey struct{}

// WithState scopes st to ctx.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// FromContext returns the state attached by the provider, or ErrNoProvider.
func FromContext(ctx context.Context) (*State, error) {
	st, ok := ctx.Value(stateKey{}).(*State)
	if !ok || st == nil {
		return nil, ErrNoProvider
	}
	return st, nil
}

// MustFromContext is FromContext for code that only runs under the provider. It panics otherwise.
func MustFromContext(ctx context.Context) *State {
	st, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return st
}
