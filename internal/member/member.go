// Package member manages the family members transactions are attributed to:
// a fixed set of predefined members plus custom ones created at runtime.
package member

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/kv"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

const customPrefix = "custom-"

var (
	ErrUnknown   = errors.New("unknown member")
	ErrEmptyName = errors.New("member name cannot be empty")
)

type Member struct {
	ID     string
	Name   string
	Custom bool
}

var predefined = []Member{
	{ID: ledger.DefaultMemberID, Name: "All Members"},
	{ID: "self", Name: "Me"},
	{ID: "spouse", Name: "Spouse"},
	{ID: "father", Name: "Father"},
	{ID: "mother", Name: "Mother"},
	{ID: "child", Name: "Child"},
}

// Service keeps the custom member map and the last selected member, both
// persisted in the key-value store.
type Service struct {
	kv    kv.Store
	newID func() string

	mu       sync.Mutex
	custom   map[string]string
	selected string
}

func NewService(store kv.Store) *Service {
	return &Service{
		kv:       store,
		newID:    func() string { return customPrefix + uuid.NewString() },
		custom:   map[string]string{},
		selected: ledger.DefaultMemberID,
	}
}

func (s *Service) Load(ctx context.Context) error {
	custom := map[string]string{}

	raw, ok, err := s.kv.Get(ctx, kv.KeyCustomMembers)
	if err != nil {
		return fmt.Errorf("loading custom members: %w", err)
	}

	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &custom); err != nil {
			return fmt.Errorf("decoding custom members: %w", err)
		}
	}

	// A stored JSON null decodes to a nil map.
	if custom == nil {
		custom = map[string]string{}
	}

	selected, ok, err := s.kv.Get(ctx, kv.KeySelectedMember)
	if err != nil {
		return fmt.Errorf("loading selected member: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.custom = custom
	s.selected = ledger.DefaultMemberID

	if ok && s.knownLocked(selected) {
		s.selected = selected
	}

	return nil
}

// List returns the predefined members followed by custom members sorted by name.
func (s *Service) List() []Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	custom := make([]Member, 0, len(s.custom))
	for id, name := range s.custom {
		custom = append(custom, Member{ID: id, Name: name, Custom: true})
	}

	slices.SortFunc(custom, func(a, b Member) int {
		return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
	})

	return append(slices.Clone(predefined), custom...)
}

// Add creates a custom member with a fresh unique id.
func (s *Service) Add(ctx context.Context, name string) (Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Member{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.knownLocked(id) {
		id = s.newID()
	}

	next := maps.Clone(s.custom)
	next[id] = name

	raw, err := json.Marshal(next)
	if err != nil {
		return Member{}, fmt.Errorf("encoding custom members: %w", err)
	}

	if err := s.kv.Set(ctx, kv.KeyCustomMembers, string(raw)); err != nil {
		return Member{}, fmt.Errorf("saving custom members: %w", err)
	}

	s.custom = next

	return Member{ID: id, Name: name, Custom: true}, nil
}

// Name returns the display name of id.
func (s *Service) Name(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name, ok := s.custom[id]; ok {
		return name, nil
	}

	for _, m := range predefined {
		if m.ID == id {
			return m.Name, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknown, id)
}

func (s *Service) Known(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.knownLocked(id)
}

func (s *Service) knownLocked(id string) bool {
	if _, ok := s.custom[id]; ok {
		return true
	}

	return slices.ContainsFunc(predefined, func(m Member) bool { return m.ID == id })
}

// Select records id as the last selected member.
func (s *Service) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownLocked(id) {
		return fmt.Errorf("%w: %s", ErrUnknown, id)
	}

	if err := s.kv.Set(ctx, kv.KeySelectedMember, id); err != nil {
		return fmt.Errorf("saving selected member: %w", err)
	}

	s.selected = id

	return nil
}

func (s *Service) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected
}
