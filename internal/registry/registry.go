// Package registry provides a global registry of playable characters.
// Characters register themselves in init() functions, allowing the menu,
// the CLI and the renderer to discover skins without hardcoded lists.
// The simulation never looks a character up; it only forwards the tag.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultID is the character used when none is selected or saved.
const DefaultID = "solar-ranger"

// ErrUnknownCharacter is returned when a tag names no registered character.
var ErrUnknownCharacter = errors.New("registry: unknown character")

// Character is a cosmetic skin for the runner.
type Character struct {
	ID      string // tag passed through the simulation (e.g., "ice-sentinel")
	Title   string // display name
	Tagline string // one-line description for the selection menu
	Hint    string // HUD hint shown during a run
	Glyph   rune   // head glyph in the lane view
	Body    string // ANSI 256 color for the body
	Accent  string // ANSI 256 color for the accent
}

var (
	characters = make(map[string]Character)
	order      []string
	mu         sync.RWMutex
)

// Register adds a character to the registry.
// Typically called from an init() function.
// Panics if the ID is empty or already registered.
func Register(c Character) {
	mu.Lock()
	defer mu.Unlock()

	if c.ID == "" {
		panic("registry: character with empty id")
	}
	if _, exists := characters[c.ID]; exists {
		panic(fmt.Sprintf("registry: character %q already registered", c.ID))
	}

	characters[c.ID] = c
	order = append(order, c.ID)
}

// List returns all registered characters in registration order.
func List() []Character {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Character, 0, len(order))
	for _, id := range order {
		result = append(result, characters[id])
	}
	return result
}

// Get returns a character by its ID.
func Get(id string) (Character, error) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := characters[id]
	if !ok {
		return Character{}, fmt.Errorf("%w %q", ErrUnknownCharacter, id)
	}
	return c, nil
}

// Lookup returns the character for id, falling back to the default skin
// for unknown tags.
func Lookup(id string) Character {
	if c, err := Get(id); err == nil {
		return c
	}
	c, _ := Get(DefaultID)
	return c
}

// Exists checks if a character with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := characters[id]
	return ok
}
