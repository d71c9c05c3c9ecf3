package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLabel(t *testing.T) {
	assert.Equal(t, "Payé", ToLabel("payee"))
	assert.Equal(t, "Pas payé", ToLabel("pas_payee"))
	assert.Equal(t, "Annulé", ToLabel("annule"))
	assert.Equal(t, "En cours", ToLabel("en_cours"))
}

func TestToLabelPassesLabelsThrough(t *testing.T) {
	// Already-canonical labels come back unchanged.
	assert.Equal(t, "Payé", ToLabel("Payé"))
	assert.Equal(t, "En cours", ToLabel("En cours"))
}

func TestToLabelUnknownPassThrough(t *testing.T) {
	// Unknown values are not the mapper's problem; validation happens at
	// the store boundary.
	assert.Equal(t, "bogus", ToLabel("bogus"))
	assert.Equal(t, "", ToLabel(""))
}

func TestToCode(t *testing.T) {
	assert.Equal(t, "payee", ToCode("Payé"))
	assert.Equal(t, "pas_payee", ToCode("Pas payé"))
	assert.Equal(t, "annule", ToCode("Annulé"))
	assert.Equal(t, "en_cours", ToCode("En cours"))
	assert.Equal(t, "bogus", ToCode("bogus"))
}

func TestRoundTrip(t *testing.T) {
	for _, label := range Labels() {
		assert.Equal(t, label, ToLabel(ToCode(label)))
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("Payé"))
	assert.True(t, IsCanonical("Pas payé"))
	assert.True(t, IsCanonical("Annulé"))
	assert.True(t, IsCanonical("En cours"))
	assert.False(t, IsCanonical("payee"))
	assert.False(t, IsCanonical(""))
	assert.False(t, IsCanonical("Paye"))
}
