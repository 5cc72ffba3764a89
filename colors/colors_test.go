package colors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	saved := color.NoColor
	defer func() { color.NoColor = saved }()

	color.NoColor = true
	assert.Equal(t, "404", Status(404), "Should render without color codes")

	color.NoColor = false
	assert.Equal(t, Red(503), Status(503))
	assert.Equal(t, Yellow(404), Status(404))
	assert.Equal(t, Cyan(301), Status(301))
	assert.Equal(t, Green(201), Status(201))
	assert.NotEqual(t, Status(201), Status(503))
}
