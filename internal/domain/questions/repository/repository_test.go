package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOptions(t *testing.T) {
	assert.Equal(t, []string{"метан", "этан", "пропан"}, SplitOptions("метан\nэтан\nпропан"))
	assert.Equal(t, []string{"a", "b"}, SplitOptions("a\r\nb"))
	assert.Nil(t, SplitOptions(""))
	assert.Nil(t, SplitOptions("  \n "))
}
