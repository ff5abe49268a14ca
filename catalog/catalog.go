// Package catalog holds the static per-game reference tables: gamemodes,
// roles and entry requirements keyed by numeric ids. The tables are loaded
// once at process start and never change afterwards.
package catalog

// DisplayInfo is the display-friendly resolution of a numeric catalog id.
type DisplayInfo struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// Game is one supported title with its lookup tables.
type Game struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	gamemodes    map[uint]DisplayInfo
	roles        map[uint]DisplayInfo
	requirements map[uint]DisplayInfo
}

// Store resolves (game id, category, ref id) triples into display objects.
type Store struct {
	games map[uint]*Game
}

// Load builds the store from the built-in tables.
func Load() *Store {
	s := &Store{games: make(map[uint]*Game)}
	for i := range games {
		s.games[games[i].ID] = &games[i]
	}
	return s
}

// Game returns the game entry for id, or nil when the game is unknown.
func (s *Store) Game(gameID uint) *Game {
	return s.games[gameID]
}

// Games lists every supported game.
func (s *Store) Games() []DisplayInfo {
	list := make([]DisplayInfo, 0, len(s.games))
	for _, g := range s.games {
		list = append(list, DisplayInfo{ID: g.ID, Name: g.Name})
	}
	return list
}

// Gamemode resolves a gamemode id for a game. Unknown keys return nil rather
// than an error so views can degrade to null.
func (s *Store) Gamemode(gameID, modeID uint) *DisplayInfo {
	return s.lookup(gameID, modeID, func(g *Game) map[uint]DisplayInfo { return g.gamemodes })
}

// Role resolves a role id for a game.
func (s *Store) Role(gameID, roleID uint) *DisplayInfo {
	return s.lookup(gameID, roleID, func(g *Game) map[uint]DisplayInfo { return g.roles })
}

// Requirement resolves a requirement id for a game.
func (s *Store) Requirement(gameID, reqID uint) *DisplayInfo {
	return s.lookup(gameID, reqID, func(g *Game) map[uint]DisplayInfo { return g.requirements })
}

func (s *Store) lookup(gameID, refID uint, table func(*Game) map[uint]DisplayInfo) *DisplayInfo {
	g := s.games[gameID]
	if g == nil {
		return nil
	}
	info, ok := table(g)[refID]
	if !ok {
		return nil
	}
	return &info
}
