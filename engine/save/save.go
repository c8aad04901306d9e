// Package save implements JSON serialization of tracker sessions: the items
// a player has received and the locations they have checked.
package save

import (
	"encoding/json"
	"sort"

	"github.com/nathoo/questlogic/engine/state"
)

// Session is the JSON-serializable tracker session.
type Session struct {
	ID      string         `json:"id"`
	Version string         `json:"version"`
	Game    string         `json:"game"`
	Player  int            `json:"player"`
	Items   map[string]int `json:"items"`
	Checked []string       `json:"checked"`
}

// Capture builds a session from a player's current state and checks.
func Capture(id, game, version string, player int, s *state.CollectionState, checked []string) *Session {
	c := append([]string(nil), checked...)
	sort.Strings(c)
	return &Session{
		ID:      id,
		Version: version,
		Game:    game,
		Player:  player,
		Items:   s.Items(player),
		Checked: c,
	}
}

// Save serializes a session to JSON bytes.
func Save(sess *Session) ([]byte, error) {
	return json.MarshalIndent(sess, "", "  ")
}

// Load deserializes JSON bytes into a Session.
func Load(data []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	// Ensure collections are never nil after load.
	if sess.Items == nil {
		sess.Items = map[string]int{}
	}
	if sess.Checked == nil {
		sess.Checked = []string{}
	}
	return &sess, nil
}

// Apply returns a fresh collection state holding the session's items.
func Apply(sess *Session) *state.CollectionState {
	s := state.New()
	for name, n := range sess.Items {
		s.Add(sess.Player, name, n)
	}
	return s
}
