package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt("5"))
	assert.Equal(t, 5, ToInt(" 5 "))
	assert.Equal(t, 0, ToInt("abc"))
	assert.Equal(t, 3, ToInt(3.7))
	assert.Equal(t, -2, ToInt(-2))
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	f, ok = ToFloat("")
	assert.True(t, ok)
	assert.Zero(t, f)

	_, ok = ToFloat("twelve")
	assert.False(t, ok)

	f, ok = ToFloat(7)
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool(nil))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "5", FormatFloat(5))
	assert.Equal(t, "5.5", FormatFloat(5.5))
	assert.Equal(t, "-3", FormatFloat(-3))
}
