package spider

import "Redwatch/internal/model"

// Dedupe 按 note_id 去重，保留首次出现的记录并维持原有顺序
func Dedupe(notes []*model.Note) []*model.Note {
	seen := make(map[string]struct{}, len(notes))
	out := make([]*model.Note, 0, len(notes))
	for _, n := range notes {
		if _, ok := seen[n.NoteID]; ok {
			continue
		}
		seen[n.NoteID] = struct{}{}
		out = append(out, n)
	}
	return out
}
