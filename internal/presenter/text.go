package presenter

import (
	"strings"

	"github.com/park285/westeros-chess/internal/identity"
	"github.com/park285/westeros-chess/internal/rules"
	"github.com/park285/westeros-chess/internal/session"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

// History returns the move list most-recent-first, e.g. "White: e4".
func (a *Adapter) History(state session.State) []boarddto.HistoryEntry {
	recs := state.NewestFirst()
	out := make([]boarddto.HistoryEntry, 0, len(recs))
	for _, rec := range recs {
		side := rec.Side.Name()
		out = append(out, boarddto.HistoryEntry{
			Side:     rec.Side.String(),
			Notation: rec.Notation,
			Text: a.text("history.entry",
				map[string]string{"Side": side, "Notation": rec.Notation},
				side+": "+rec.Notation),
		})
	}
	return out
}

// HistoryLines is History reduced to display text.
func (a *Adapter) HistoryLines(state session.State) []string {
	entries := a.History(state)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func (a *Adapter) HistoryEmpty() string {
	return a.text("history.empty", nil, "No moves yet. Drag a piece to start.")
}

// Legend summarises who is who for both sides plus the observer line.
func (a *Adapter) Legend() boarddto.LegendResponse {
	resp := boarddto.LegendResponse{
		Title:    a.text("legend.title", nil, "Legend"),
		Observer: a.text("legend.observer", nil, ""),
	}
	for _, side := range []identity.Side{identity.White, identity.Black} {
		entries := legendEntries(side)
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			parts = append(parts, a.text("legend.entry",
				map[string]string{"Names": e.names, "Letter": e.letter},
				e.names+" ("+e.letter+")"))
		}
		joined := strings.Join(parts, ", ")
		resp.Sides = append(resp.Sides, boarddto.LegendSide{
			Side: side.String(),
			Text: a.text("legend.side",
				map[string]string{"Side": side.Name(), "Entries": joined},
				side.Name()+": "+joined),
		})
	}
	return resp
}

type legendEntry struct {
	letter string
	names  string
}

// legendEntries groups distinct character names per piece letter. Pawn
// names are joined with "/", the paired pieces with " & ".
func legendEntries(side identity.Side) []legendEntry {
	roster := identity.Roster(side)
	out := make([]legendEntry, 0, len(rules.Kinds))
	for _, kind := range rules.Kinds {
		letter := string(kind)
		var names []string
		seen := make(map[string]bool)
		for _, e := range roster {
			if e.Slot.Letter() != letter || e.Identity.IsEmpty() || seen[e.Identity.DisplayName] {
				continue
			}
			seen[e.Identity.DisplayName] = true
			names = append(names, e.Identity.DisplayName)
		}
		if len(names) == 0 {
			continue
		}
		sep := " & "
		if kind == rules.KindPawn {
			sep = "/"
		}
		out = append(out, legendEntry{letter: letter, names: strings.Join(names, sep)})
	}
	return out
}
