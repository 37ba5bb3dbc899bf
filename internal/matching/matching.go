// Package matching suggests transaction reasons from what was entered before.
package matching

import (
	"cmp"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

type reasonStat struct {
	text   string
	count  int
	latest int64
}

// Reasons returns the distinct reasons in txs, most used first. Reasons that
// differ only in case or surrounding space count as one and are reported with
// their most recent spelling. A limit of zero or less returns all of them.
func Reasons(txs []ledger.Transaction, limit int) []string {
	return rank(txs, "", limit)
}

// Suggest is Reasons restricted to reasons starting with prefix, ignoring case.
func Suggest(txs []ledger.Transaction, prefix string, limit int) []string {
	return rank(txs, strings.ToLower(strings.TrimSpace(prefix)), limit)
}

func rank(txs []ledger.Transaction, prefix string, limit int) []string {
	stats := make(map[string]*reasonStat)

	for _, tx := range txs {
		text := strings.TrimSpace(tx.Reason)
		key := strings.ToLower(text)

		if key == "" || !strings.HasPrefix(key, prefix) {
			continue
		}

		s, ok := stats[key]
		if !ok {
			s = &reasonStat{}
			stats[key] = s
		}

		s.count++

		if tx.ID >= s.latest {
			s.latest = tx.ID
			s.text = text
		}
	}

	ranked := make([]*reasonStat, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, s)
	}

	slices.SortFunc(ranked, func(a, b *reasonStat) int {
		return cmp.Or(
			cmp.Compare(b.count, a.count),
			cmp.Compare(b.latest, a.latest),
			cmp.Compare(a.text, b.text),
		)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.text
	}

	return out
}
