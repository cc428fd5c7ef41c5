package replacement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned when a policy name cannot be recognized.
var ErrUnknownPolicy = errors.New("unknown replacement policy")

// Policy identifies a page replacement algorithm.
type Policy int

// The supported policies, in the order they are listed to users.
const (
	FIFO Policy = iota
	LRU
	Optimal
	SecondChance
	MRU
	Random
	NFU
)

type policyInfo struct {
	name        string
	title       string
	description string
}

var policyInfos = [...]policyInfo{
	FIFO: {
		name:        "fifo",
		title:       "First-In-First-Out (FIFO)",
		description: "The oldest page in memory is replaced when a new page needs to be loaded.",
	},
	LRU: {
		name:        "lru",
		title:       "Least Recently Used (LRU)",
		description: "The page that hasn't been used for the longest time is replaced.",
	},
	Optimal: {
		name:        "optimal",
		title:       "Optimal (Belady's Algorithm)",
		description: "Replaces the page that won't be used for the longest time in the future.",
	},
	SecondChance: {
		name:        "secondChance",
		title:       "Second Chance (Clock)",
		description: "A modified FIFO that gives pages a second chance before replacement.",
	},
	MRU: {
		name:        "mru",
		title:       "Most Recently Used (MRU)",
		description: "The most recently used page is replaced when a new page needs to be loaded.",
	},
	Random: {
		name:        "random",
		title:       "Random Replacement",
		description: "A random page is selected for replacement when needed.",
	},
	NFU: {
		name:        "nfu",
		title:       "Not Frequently Used (NFU)",
		description: "Pages that are used less frequently are replaced first.",
	},
}

var policyAliases = map[string]Policy{
	"second-chance": SecondChance,
	"second_chance": SecondChance,
	"clock":         SecondChance,
	"opt":           Optimal,
	"belady":        Optimal,
}

// Policies returns all the supported policies.
func Policies() []Policy {
	return []Policy{FIFO, LRU, Optimal, SecondChance, MRU, Random, NFU}
}

// ParsePolicy finds a policy by its name. Matching is case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	for _, p := range Policies() {
		if strings.ToLower(p.String()) == key {
			return p, nil
		}
	}

	if p, ok := policyAliases[key]; ok {
		return p, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Valid reports whether p is one of the supported policies.
func (p Policy) Valid() bool {
	return p >= FIFO && p <= NFU
}

func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Policy(%d)", int(p))
	}

	return policyInfos[p].name
}

// Title returns the human readable name of the policy.
func (p Policy) Title() string {
	if !p.Valid() {
		return p.String()
	}

	return policyInfos[p].title
}

// Description returns a one-sentence explanation of the policy.
func (p Policy) Description() string {
	if !p.Valid() {
		return ""
	}

	return policyInfos[p].description
}

// MarshalText encodes the policy as its name.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}
