package strategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectIsDeterministic(t *testing.T) {
	s := NewSelector(50, "")

	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("user-%d", i)
		first := s.Select(id)
		for j := 0; j < 5; j++ {
			assert.Equal(t, first, s.Select(id))
		}
	}
}

func TestSelectSplitExtremes(t *testing.T) {
	all := NewSelector(100, "")
	none := NewSelector(0, "")

	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("user-%d", i)
		assert.Equal(t, New, all.Select(id))
		assert.Equal(t, Old, none.Select(id))
	}
}

func TestSelectSplitRoughlyHonored(t *testing.T) {
	s := NewSelector(50, "")

	newCount := 0
	const total = 1000
	for i := 0; i < total; i++ {
		if s.Select(fmt.Sprintf("user-%d", i)) == New {
			newCount++
		}
	}

	// A hash-based 50/50 split over 1000 IDs lands well inside 35–65%.
	assert.Greater(t, newCount, 350)
	assert.Less(t, newCount, 650)
}

func TestForcedOverridesSplit(t *testing.T) {
	forcedNew := NewSelector(0, string(New))
	forcedOld := NewSelector(100, string(Old))

	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("user-%d", i)
		assert.Equal(t, New, forcedNew.Select(id))
		assert.Equal(t, Old, forcedOld.Select(id))
	}
}

func TestInvalidForcedFallsThroughToSplit(t *testing.T) {
	s := NewSelector(100, "shiny")

	assert.Equal(t, New, s.Select("anyone"))
}

func TestSplitPercentClamped(t *testing.T) {
	assert.Equal(t, New, NewSelector(250, "").Select("anyone"))
	assert.Equal(t, Old, NewSelector(-5, "").Select("anyone"))
}
