package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueueWeights(t *testing.T) {
	got := ParseQueueWeights("critical=6,default=3,low=1")
	assert.Equal(t, map[string]int{"critical": 6, "default": 3, "low": 1}, got)
}

func TestParseQueueWeightsDefaultsToOne(t *testing.T) {
	got := ParseQueueWeights("chat,notifications=2")
	assert.Equal(t, map[string]int{"chat": 1, "notifications": 2}, got)
}

func TestParseQueueWeightsIgnoresJunk(t *testing.T) {
	got := ParseQueueWeights(" , default=abc, =5, low=0 ")
	assert.Equal(t, map[string]int{"default": 1, "low": 1}, got)
}

func TestParseQueueWeightsEmpty(t *testing.T) {
	assert.Empty(t, ParseQueueWeights(""))
}
