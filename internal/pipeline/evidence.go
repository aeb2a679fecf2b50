package pipeline

import "sort"

// snippet is one retained review excerpt with the signals used to select
// and order it.
type snippet struct {
	star    int
	helpful int
	text    string
}

// evidenceBuffer keeps at most capacity "best evidence" snippets per
// product. Inserts are O(capacity): append until full, then replace the
// entry with the minimum helpful vote when the candidate strictly beats it
// (ties keep the first occurrence). capacity is small and fixed, so a scan
// is cheaper than maintaining a heap.
type evidenceBuffer struct {
	capacity int
	entries  []snippet
}

func newEvidenceBuffer(capacity int) *evidenceBuffer {
	return &evidenceBuffer{capacity: capacity}
}

// offer considers a snippet for retention.
func (b *evidenceBuffer) offer(star, helpful int, text string) {
	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, snippet{star: star, helpful: helpful, text: text})
		return
	}
	minIdx := 0
	for i, e := range b.entries {
		if e.helpful < b.entries[minIdx].helpful {
			minIdx = i
		}
	}
	if helpful > b.entries[minIdx].helpful {
		b.entries[minIdx] = snippet{star: star, helpful: helpful, text: text}
	}
}

// favorableTexts returns the snippet texts ordered star descending, then
// helpful vote descending: the strongest and most corroborated praise first.
func (b *evidenceBuffer) favorableTexts() []string {
	sorted := make([]snippet, len(b.entries))
	copy(sorted, b.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].star != sorted[j].star {
			return sorted[i].star > sorted[j].star
		}
		return sorted[i].helpful > sorted[j].helpful
	})
	return texts(sorted)
}

// unfavorableTexts returns the snippet texts ordered star ascending, then
// helpful vote descending: the harshest and most corroborated complaints first.
func (b *evidenceBuffer) unfavorableTexts() []string {
	sorted := make([]snippet, len(b.entries))
	copy(sorted, b.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].star != sorted[j].star {
			return sorted[i].star < sorted[j].star
		}
		return sorted[i].helpful > sorted[j].helpful
	})
	return texts(sorted)
}

func texts(entries []snippet) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.text
	}
	return out
}
