package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanVTT(t *testing.T) {
	raw := "WEBVTT\nKind: captions\n\n1\n00:00:01.000 --> 00:00:04.000\nwelcome back everyone\n\n2\n00:00:04.000 --> 00:00:07.500\ntoday we talk about Go\n"

	assert.Equal(t, "Kind: captions welcome back everyone today we talk about Go", CleanVTT(raw))
}

func TestCleanVTTMarkupOnly(t *testing.T) {
	// Nothing but headers, indices and timing lines yields an empty string
	raw := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:04.000\n\n2\n00:00:04.000 --> 00:00:07.500\n"

	assert.Equal(t, "", CleanVTT(raw))
}

func TestCleanVTTPreservesOrder(t *testing.T) {
	raw := "first\n00:00:01.000 --> 00:00:02.000\nsecond\n3\nthird"

	assert.Equal(t, "first second third", CleanVTT(raw))
}

func TestCleanVTTTrimsLines(t *testing.T) {
	raw := "  padded text  \n\t tabbed line \n"

	assert.Equal(t, "padded text tabbed line", CleanVTT(raw))
}

func TestCleanVTTEmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanVTT(""))
}

func TestCleanVTTKeepsNumbersInsideText(t *testing.T) {
	// Only purely numeric lines count as cue indices
	raw := "chapter 12 begins\n42\n100 ways to do it"

	assert.Equal(t, "chapter 12 begins 100 ways to do it", CleanVTT(raw))
}
