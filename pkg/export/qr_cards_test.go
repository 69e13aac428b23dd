package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmpty(t *testing.T) {
	renderer := NewQRCardRenderer()
	_, err := renderer.Render(nil)
	require.Error(t, err)
}

func TestRenderSinglePage(t *testing.T) {
	renderer := NewQRCardRenderer()
	cards := []QRCard{{QRID: "AGP7", Name: "Ana", Subtitle: "3B - Matematicas"}}

	pdf, err := renderer.Render(cards)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderPaginatesAtNineCards(t *testing.T) {
	renderer := NewQRCardRenderer()
	var cards []QRCard
	for i := 0; i < 10; i++ {
		cards = append(cards, QRCard{QRID: fmt.Sprintf("AGP%d", i), Name: "Ana", Subtitle: "3B"})
	}

	onePage, err := renderer.Render(cards[:9])
	require.NoError(t, err)
	twoPages, err := renderer.Render(cards)
	require.NoError(t, err)
	assert.Greater(t, len(twoPages), len(onePage))
}
