package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyWellFormed(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [1, 3]\nПріоритет: 1 - затишна атмосфера", 3)

	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, parsed.Indices)
	assert.Equal(t, 0, parsed.PriorityIndex)
	assert.Equal(t, "затишна атмосфера", parsed.Explanation)
}

func TestParseReplySingleVariant(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [2]\nПріоритет: 2 - близько до центру", 2)

	require.True(t, ok)
	assert.Equal(t, []int{1}, parsed.Indices)
	assert.Equal(t, 1, parsed.PriorityIndex)
	assert.Equal(t, "близько до центру", parsed.Explanation)
}

func TestParseReplyEnglishLabels(t *testing.T) {
	parsed, ok := ParseReply("Variants: [1]\nPriority: 1 - cozy and quiet", 2)

	require.True(t, ok)
	assert.Equal(t, []int{0}, parsed.Indices)
	assert.Equal(t, "cozy and quiet", parsed.Explanation)
}

func TestParseReplyBareNumbersLine(t *testing.T) {
	// No labels at all: the first digit-bearing line is the selection.
	parsed, ok := ParseReply("2, 1", 3)

	require.True(t, ok)
	assert.Equal(t, []int{1, 0}, parsed.Indices)
	assert.Equal(t, 1, parsed.PriorityIndex)
}

func TestParseReplyMissingPriorityLine(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [2, 3]", 3)

	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, parsed.Indices)
	assert.Equal(t, 1, parsed.PriorityIndex)
	assert.Empty(t, parsed.Explanation)
}

func TestParseReplyOutOfRangeIndicesDropped(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [5, 2]\nПріоритет: 5 - немає такого", 3)

	require.True(t, ok)
	assert.Equal(t, []int{1}, parsed.Indices)
	// An out-of-range priority falls back to the first selection.
	assert.Equal(t, 1, parsed.PriorityIndex)
}

func TestParseReplyDuplicateIndicesCollapsed(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [2, 2]", 3)

	require.True(t, ok)
	assert.Equal(t, []int{1}, parsed.Indices)
}

func TestParseReplyPriorityOutsideSelectionIgnored(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [1, 2]\nПріоритет: 3 - зайвий", 3)

	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, parsed.Indices)
	assert.Equal(t, 0, parsed.PriorityIndex)
}

func TestParseReplyTakesAtMostTwo(t *testing.T) {
	parsed, ok := ParseReply("Варіанти: [1, 2, 3]", 3)

	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, parsed.Indices)
}

func TestParseReplyMalformedNeverPanics(t *testing.T) {
	for _, reply := range []string{
		"",
		"не можу обрати",
		"Варіанти: []",
		"Варіанти: [0]",
		"Варіанти: [9]",
		"Пріоритет: 1",
		"\n\n\n",
	} {
		_, ok := ParseReply(reply, 3)
		assert.False(t, ok, "reply %q should not parse", reply)
	}
}

func TestParseReplyZeroCandidates(t *testing.T) {
	_, ok := ParseReply("Варіанти: [1]", 0)
	assert.False(t, ok)
}
