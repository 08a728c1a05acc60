package cards

import "strings"

type FilterOptions struct {
	Factions  []string `json:"factions"`
	Types     []string `json:"types"`
	Positions []string `json:"positions"`
	FreeWords string   `json:"free_words"`
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

// Filter returns the cards matching every non-empty option. Free words must
// all appear in the name, type, effect or legend, ignoring case.
func Filter(cards []Card, opt FilterOptions) []Card {
	var out []Card
	for _, c := range cards {
		if len(opt.Factions) > 0 && !containsAny([]string{c.Faction}, opt.Factions) {
			continue
		}
		if len(opt.Types) > 0 && !containsAny([]string{c.Type}, opt.Types) {
			continue
		}
		if len(opt.Positions) > 0 && !containsAny(c.Positions(), opt.Positions) {
			continue
		}
		if opt.FreeWords != "" {
			hay := strings.ToLower(strings.Join([]string{c.Name, c.Type, c.Effect, c.Legend}, " "))
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				if !strings.Contains(hay, strings.ToLower(k)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Factions returns the distinct factions in first-seen order.
func Factions(cards []Card) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range cards {
		if !seen[c.Faction] {
			seen[c.Faction] = true
			out = append(out, c.Faction)
		}
	}
	return out
}
