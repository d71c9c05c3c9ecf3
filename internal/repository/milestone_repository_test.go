package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus(nil))
	assert.True(t, validStatus(strptr("")))
	assert.True(t, validStatus(strptr("Payé")))
	assert.True(t, validStatus(strptr("Pas payé")))
	assert.True(t, validStatus(strptr("Annulé")))
	assert.True(t, validStatus(strptr("En cours")))
	assert.False(t, validStatus(strptr("payee")))
	assert.False(t, validStatus(strptr("Paye")))
}

func TestBuildMilestoneSetEmptyPatch(t *testing.T) {
	set, args := buildMilestoneSet(MilestonePatch{})
	assert.Empty(t, set)
	assert.Nil(t, args)
}

func TestBuildMilestoneSetSingleField(t *testing.T) {
	set, args := buildMilestoneSet(MilestonePatch{Label: strptr("Acompte")})
	assert.Equal(t, "label=?, updated_at=NOW()", set)
	assert.Equal(t, []any{"Acompte"}, args)
}

func TestBuildMilestoneSetEmptyStringClearsColumn(t *testing.T) {
	set, args := buildMilestoneSet(MilestonePatch{Comment: strptr("")})
	assert.Equal(t, "comment=?, updated_at=NOW()", set)
	assert.Equal(t, []any{nil}, args)
}

func TestBuildMilestoneSetAllFields(t *testing.T) {
	set, args := buildMilestoneSet(MilestonePatch{
		Label:   strptr("Solde"),
		DueDate: strptr("2026-09-01"),
		Status:  strptr("Payé"),
		Comment: strptr("virement reçu"),
	})
	assert.Equal(t, "label=?, due_date=?, status=?, comment=?, updated_at=NOW()", set)
	assert.Equal(t, []any{"Solde", "2026-09-01", "Payé", "virement reçu"}, args)
}

func TestEmptyToNil(t *testing.T) {
	assert.Nil(t, emptyToNil(nil))
	assert.Nil(t, emptyToNil(strptr("")))
	assert.Equal(t, "x", emptyToNil(strptr("x")))
}
