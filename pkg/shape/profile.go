package shape

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Profile is the symbolic tag a shape exposes on one local face. Two
// neighbouring shapes connect when their profiles on the shared face are
// declared opposites.
type Profile string

// ProfileNone is exposed by faces with nothing to connect to. It never
// matches anything.
const ProfileNone Profile = ""

// Built-in profiles.
const (
	RoofLR      Profile = "roof-lr"
	RoofRL      Profile = "roof-rl"
	RoofBack    Profile = "roof-back"
	RoofEave    Profile = "roof-eave"
	RidgeEnd    Profile = "ridge-end"
	RidgeSlope  Profile = "ridge-slope"
	ValleyEnd   Profile = "valley-end"
	ValleySlope Profile = "valley-slope"
	WindowE     Profile = "window-e"
	WindowW     Profile = "window-w"
	BanisterN   Profile = "banister-n"
	BanisterS   Profile = "banister-s"
	StairsE     Profile = "stairs-e"
	StairsW     Profile = "stairs-w"
)

// KnownProfiles lists every built-in profile.
func KnownProfiles() []Profile {
	return []Profile{
		RoofLR, RoofRL, RoofBack, RoofEave,
		RidgeEnd, RidgeSlope, ValleyEnd, ValleySlope,
		WindowE, WindowW, BanisterN, BanisterS, StairsE, StairsW,
	}
}

var ErrInvalidProfile = errors.New("shape: invalid profile")

type profilePair [2]Profile

func orderedPair(a, b Profile) profilePair {
	if b < a {
		a, b = b, a
	}
	return profilePair{a, b}
}

// OppositeTable holds the declared connecting pairs. Matching is symmetric
// and only reflexive for tags explicitly paired with themselves. A tag that
// appears in no pair matches nothing.
type OppositeTable struct {
	pairs map[profilePair]struct{}
}

func NewOppositeTable() *OppositeTable {
	return &OppositeTable{pairs: make(map[profilePair]struct{})}
}

// Declare records that a and b connect.
func (t *OppositeTable) Declare(a, b Profile) error {
	if a == ProfileNone || b == ProfileNone {
		return fmt.Errorf("%w: empty tag in pair (%q, %q)", ErrInvalidProfile, a, b)
	}
	t.pairs[orderedPair(a, b)] = struct{}{}
	return nil
}

// Matches reports whether a and b were declared as a pair.
func (t *OppositeTable) Matches(a, b Profile) bool {
	if t == nil || a == ProfileNone || b == ProfileNone {
		return false
	}
	_, ok := t.pairs[orderedPair(a, b)]
	return ok
}

// Pairs returns the declared pairs in a stable order.
func (t *OppositeTable) Pairs() [][2]Profile {
	out := make([][2]Profile, 0, len(t.pairs))
	for p := range t.pairs {
		out = append(out, p)
	}
	slices.SortFunc(out, func(x, y [2]Profile) int {
		if c := strings.Compare(string(x[0]), string(y[0])); c != 0 {
			return c
		}
		return strings.Compare(string(x[1]), string(y[1]))
	})
	return out
}

func (t *OppositeTable) Len() int { return len(t.pairs) }

// DefaultOpposites declares the pairs used by the built-in kinds. Roof
// slopes pair by edge height: the low edge of a ridge meets a tile's eave,
// the high edge of a valley meets a tile's back.
func DefaultOpposites() *OppositeTable {
	t := NewOppositeTable()
	for _, p := range [][2]Profile{
		{RoofLR, RoofRL},
		{RidgeEnd, RidgeEnd},
		{RidgeSlope, RoofEave},
		{ValleyEnd, ValleyEnd},
		{ValleySlope, RoofBack},
		{WindowE, WindowW},
		{BanisterN, BanisterS},
		{StairsE, StairsW},
	} {
		// Built-in tags are never empty.
		_ = t.Declare(p[0], p[1])
	}
	return t
}

type oppositesFile struct {
	Pairs [][]string `yaml:"pairs"`
}

// LoadOpposites parses a YAML opposite table:
//
//	pairs:
//	  - [roof-lr, roof-rl]
//	  - [ridge-end, ridge-end]
//
// When known is non-empty every tag must be one of them.
func LoadOpposites(r io.Reader, known []Profile) (*OppositeTable, error) {
	var f oppositesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("shape: parse opposites: %w", err)
	}

	t := NewOppositeTable()
	for i, raw := range f.Pairs {
		if len(raw) != 2 {
			return nil, fmt.Errorf("%w: pair %d has %d tags, want 2", ErrInvalidProfile, i, len(raw))
		}
		a, b := Profile(strings.TrimSpace(raw[0])), Profile(strings.TrimSpace(raw[1]))
		if len(known) > 0 {
			for _, p := range []Profile{a, b} {
				if p != ProfileNone && !lo.Contains(known, p) {
					return nil, fmt.Errorf("%w: unknown tag %q in pair %d", ErrInvalidProfile, p, i)
				}
			}
		}
		if err := t.Declare(a, b); err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
	}
	return t, nil
}
