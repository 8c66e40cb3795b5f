package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStyle_Known(t *testing.T) {
	for _, status := range []string{StatusCreated, StatusModified, StatusIdentical} {
		rendered := StatusStyle(status).Render(status)
		assert.Contains(t, rendered, status)
	}
}

func TestFormatCheckmark(t *testing.T) {
	got := FormatCheckmark("done")
	assert.Contains(t, got, "✔")
	assert.True(t, strings.HasSuffix(got, " done"))
}

func TestWelcome(t *testing.T) {
	got := Welcome()
	assert.Contains(t, got, "Thanks for generating with ")
	assert.Contains(t, got, "WP Make")
}

func TestGoodbye(t *testing.T) {
	assert.Contains(t, Goodbye("plugin"), "Your plugin has been generated.")
	assert.Contains(t, Goodbye(""), "Your item has been generated.")
}
