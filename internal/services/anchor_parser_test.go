package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchors_TimeOfDayBeforeActivity(t *testing.T) {
	anchors := ParseAnchors("In the morning I'd like to go to the fish market.")

	require.Len(t, anchors, 1)
	assert.Equal(t, "the fish market", anchors[0].Activity)
	assert.Equal(t, "morning", anchors[0].TimeOfDay)
	assert.Empty(t, anchors[0].Time)
}

func TestParseAnchors_TonightNormalizesToEvening(t *testing.T) {
	anchors := ParseAnchors("tonight we visit the night market")

	require.Len(t, anchors, 1)
	assert.Equal(t, "the night market", anchors[0].Activity)
	assert.Equal(t, "evening", anchors[0].TimeOfDay)
}

func TestParseAnchors_TimeOfDayAfterActivity(t *testing.T) {
	anchors := ParseAnchors("Can we go to the castle in the afternoon?")

	require.Len(t, anchors, 1)
	assert.Equal(t, "the castle", anchors[0].Activity)
	assert.Equal(t, "afternoon", anchors[0].TimeOfDay)
}

func TestParseAnchors_GenericCollectsAll(t *testing.T) {
	anchors := ParseAnchors("I want to visit the castle, and I need to go to the market.")

	require.Len(t, anchors, 2)
	assert.Equal(t, "the castle", anchors[0].Activity)
	assert.Equal(t, "the market", anchors[1].Activity)
	assert.Empty(t, anchors[0].TimeOfDay)
}

func TestParseAnchors_ThenSplitsMorningEvening(t *testing.T) {
	anchors := ParseAnchors("temple first then dinner by the river")

	require.Len(t, anchors, 2)
	assert.Equal(t, "temple first", anchors[0].Activity)
	assert.Equal(t, "morning", anchors[0].TimeOfDay)
	assert.Equal(t, "dinner by the river", anchors[1].Activity)
	assert.Equal(t, "evening", anchors[1].TimeOfDay)
}

func TestParseAnchors_ExplicitTimeExtracted(t *testing.T) {
	anchors := ParseAnchors("I want to visit the observatory at 7:30 pm.")

	require.Len(t, anchors, 1)
	assert.Equal(t, "the observatory", anchors[0].Activity)
	assert.Equal(t, "7:30 pm", anchors[0].Time)
}

func TestParseAnchors_EmptyAndGenericMessages(t *testing.T) {
	assert.Nil(t, ParseAnchors(""))
	assert.Nil(t, ParseAnchors("   "))
	assert.Nil(t, ParseAnchors("plan my day please"))
}
