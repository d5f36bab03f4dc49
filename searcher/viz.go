package searcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/EmoruwaTolu/ShowdownBattler/game"
)

// FormatTree pretty-prints the search tree of a completed decision: top
// children per node by visits, with N, Q, and prior per edge. Colors degrade
// gracefully on dumb terminals via termenv's profile detection.
func FormatTree(d Decision, maxDepth, topK int) string {
	if d.root == nil {
		return "(no search tree)"
	}
	profile := termenv.ColorProfile()
	var b strings.Builder

	header := fmt.Sprintf("ROOT value=%+.3f actions=%d", d.RootValue, len(d.legal))
	if d.sample != nil {
		header = fmt.Sprintf("ROOT %s vs %s value=%+.3f actions=%d",
			d.sample.Us.ActiveMon().Species, d.sample.Them.ActiveMon().Species,
			d.RootValue, len(d.legal))
	}
	rootLabel := termenv.String(header).Foreground(profile.Color("12")).Bold()
	b.WriteString(rootLabel.String())
	b.WriteByte('\n')
	formatChildren(&b, profile, d.root, 0, maxDepth, topK, "")
	return b.String()
}

type edgeRow struct {
	action game.Action
	e      *edge
}

func formatChildren(b *strings.Builder, profile termenv.Profile, n *node, depth, maxDepth, topK int, prefix string) {
	n.Lock()
	rows := make([]edgeRow, 0, len(n.edges))
	for a, e := range n.edges {
		rows = append(rows, edgeRow{action: a, e: e})
	}
	n.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].e.visits != rows[j].e.visits {
			return rows[i].e.visits > rows[j].e.visits
		}
		return actionLess(rows[i].action, rows[j].action)
	})
	if len(rows) > topK {
		rows = rows[:topK]
	}

	for i, row := range rows {
		branch := "├─"
		ext := "│  "
		if i == len(rows)-1 {
			branch = "└─"
			ext = "   "
		}
		line := fmt.Sprintf("%s %-20s N=%5.0f  Q=%+.3f  P=%.3f",
			branch, row.action, row.e.visits, row.e.q(), row.e.prior)

		styled := termenv.String(line)
		switch {
		case row.e.q() > 0.15:
			styled = styled.Foreground(profile.Color("10"))
		case row.e.q() < -0.15:
			styled = styled.Foreground(profile.Color("9"))
		}
		b.WriteString(prefix)
		b.WriteString(styled.String())
		b.WriteByte('\n')

		if depth+1 < maxDepth {
			formatChildren(b, profile, row.e.child, depth+1, maxDepth, topK, prefix+ext)
		}
	}
}
