package incident

import "sort"

// Group is one display row: a primary incident plus incidents presented
// together with it (the assist of a goal, the first yellow of a pair).
type Group struct {
	Primary Incident
	Linked  []Incident
	// SendOff marks rows implying an ejection: a red card, a stored
	// double-yellow, or a paired second yellow.
	SendOff bool
}

// YellowPair is two yellow cards for the same player, jointly implying an
// ejection without a separately stored red.
type YellowPair struct {
	PlayerID string
	First    Card
	Second   Card
}

// PairSecondYellows finds, per player, the first two yellow cards in ledger
// order. Players who already have a stored red or double-yellow card are
// skipped so the ejection is never rendered twice.
func PairSecondYellows(entries []Incident) []YellowPair {
	sentOff := make(map[string]bool)
	for _, in := range entries {
		card, ok := in.(Card)
		if !ok || card.PlayerID == "" {
			continue
		}
		if card.Color == CardRed || card.Color == CardDoubleYellow {
			sentOff[card.PlayerID] = true
		}
	}

	firstYellow := make(map[string]Card)
	paired := make(map[string]bool)
	var pairs []YellowPair
	for _, in := range entries {
		card, ok := in.(Card)
		if !ok || card.Color != CardYellow || card.PlayerID == "" {
			continue
		}
		if sentOff[card.PlayerID] || paired[card.PlayerID] {
			continue
		}
		first, ok := firstYellow[card.PlayerID]
		if !ok {
			firstYellow[card.PlayerID] = card
			continue
		}
		pairs = append(pairs, YellowPair{PlayerID: card.PlayerID, First: first, Second: card})
		paired[card.PlayerID] = true
	}
	return pairs
}

// GroupForDisplay folds the ledger into ordered display rows. Goals absorb
// their linked assist, a player's second yellow absorbs the first, and every
// other incident stands alone. Rows are ordered by the primary incident's
// minute ascending; rows sharing a minute keep ledger insertion order.
func GroupForDisplay(entries []Incident) []Group {
	consumedAssists := make(map[string]bool)
	assistByID := make(map[string]Assist)
	for _, in := range entries {
		if assist, ok := in.(Assist); ok {
			assistByID[assist.ID] = assist
		}
	}
	// Assists can be linked from either side: the goal naming its assist, or
	// the assist naming its goal.
	assistForGoal := make(map[string]Assist)
	for _, in := range entries {
		goal, ok := in.(Goal)
		if !ok {
			continue
		}
		if assist, ok := assistByID[goal.AssistID]; ok {
			assistForGoal[goal.ID] = assist
			consumedAssists[assist.ID] = true
		}
	}
	for _, in := range entries {
		assist, ok := in.(Assist)
		if !ok || consumedAssists[assist.ID] || assist.GoalID == "" {
			continue
		}
		if _, taken := assistForGoal[assist.GoalID]; taken {
			continue
		}
		assistForGoal[assist.GoalID] = assist
		consumedAssists[assist.ID] = true
	}

	firstOfPair := make(map[string]bool)
	pairBysecond := make(map[string]YellowPair)
	for _, pair := range PairSecondYellows(entries) {
		firstOfPair[pair.First.ID] = true
		pairBysecond[pair.Second.ID] = pair
	}

	var groups []Group
	for _, in := range entries {
		switch v := in.(type) {
		case Goal:
			group := Group{Primary: v}
			if assist, ok := assistForGoal[v.ID]; ok {
				group.Linked = []Incident{assist}
			}
			groups = append(groups, group)
		case Assist:
			if consumedAssists[v.ID] {
				continue
			}
			groups = append(groups, Group{Primary: v})
		case Card:
			if firstOfPair[v.ID] {
				continue
			}
			if pair, ok := pairBysecond[v.ID]; ok {
				groups = append(groups, Group{
					Primary: v,
					Linked:  []Incident{pair.First},
					SendOff: true,
				})
				continue
			}
			groups = append(groups, Group{
				Primary: v,
				SendOff: v.Color == CardRed || v.Color == CardDoubleYellow,
			})
		default:
			groups = append(groups, Group{Primary: in})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Primary.Common().Minute < groups[j].Primary.Common().Minute
	})
	return groups
}
