package deck

import (
	"sort"

	"github.com/youruser/cardforge/internal/cards"
)

// Deck is the print list of one faction.
type Deck struct {
	Name    string         `json:"name"`
	Faction string         `json:"faction"`
	Cards   map[string]int `json:"cards"` // card name -> copies
}

// Total is the number of cards to print.
func (d Deck) Total() int {
	n := 0
	for _, cnt := range d.Cards {
		n += cnt
	}
	return n
}

// ByFaction groups cards into one deck per faction. A card prints Count
// copies, at least one. Factions are returned sorted.
func ByFaction(name string, cs []cards.Card) []Deck {
	byFaction := map[string]*Deck{}
	for _, c := range cs {
		d, ok := byFaction[c.Faction]
		if !ok {
			d = &Deck{Name: name, Faction: c.Faction, Cards: map[string]int{}}
			byFaction[c.Faction] = d
		}
		d.Cards[c.Name] += max(c.Count.Int(), 1)
	}

	out := make([]Deck, 0, len(byFaction))
	for _, d := range byFaction {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Faction < out[j].Faction })
	return out
}
