package spider

import (
	"Redwatch/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func note(id, keyword string) *model.Note {
	return &model.Note{NoteID: id, Keyword: keyword}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	in := []*model.Note{note("1", "a"), note("2", "a"), note("1", "b"), note("3", "b"), note("2", "c")}

	out := Dedupe(in)

	assert.Len(t, out, 3)
	assert.Equal(t, []string{"1", "2", "3"}, ids(out))
	assert.Equal(t, "a", out[0].Keyword)
	assert.Same(t, in[0], out[0])
}

func TestDedupe_Properties(t *testing.T) {
	inputs := [][]*model.Note{
		nil,
		{},
		{note("x", "k")},
		{note("x", "k"), note("x", "k"), note("x", "k")},
		{note("c", "k"), note("b", "k"), note("a", "k"), note("b", "k"), note("c", "k")},
	}
	for _, in := range inputs {
		out := Dedupe(in)
		assert.LessOrEqual(t, len(out), len(in))

		seen := map[string]bool{}
		for _, n := range out {
			assert.False(t, seen[n.NoteID], "duplicate %s", n.NoteID)
			seen[n.NoteID] = true
		}

		// 输出顺序与输入中的首次出现顺序一致
		var firsts []string
		firstSeen := map[string]bool{}
		for _, n := range in {
			if !firstSeen[n.NoteID] {
				firstSeen[n.NoteID] = true
				firsts = append(firsts, n.NoteID)
			}
		}
		assert.Equal(t, len(firsts), len(out))
		if len(firsts) > 0 {
			assert.Equal(t, firsts, ids(out))
		}
	}
}

func ids(notes []*model.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.NoteID)
	}
	return out
}
