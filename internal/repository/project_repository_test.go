package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProjectStatusDefault(t *testing.T) {
	s, err := normalizeProjectStatus("")
	require.NoError(t, err)
	assert.Equal(t, "En cours", s)
}

func TestNormalizeProjectStatusAccepted(t *testing.T) {
	for _, want := range []string{"En cours", "Terminée", "Annulée"} {
		s, err := normalizeProjectStatus(want)
		require.NoError(t, err)
		assert.Equal(t, want, s)
	}
}

func TestNormalizeProjectStatusRejected(t *testing.T) {
	for _, bad := range []string{"en cours", "Fini", "Payé"} {
		_, err := normalizeProjectStatus(bad)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(errAs("Error 1062 (23000): Duplicate entry 'a@b.fr' for key 'users.email'")))
	assert.False(t, isDuplicate(errAs("Error 1064: syntax error")))
	assert.False(t, isDuplicate(nil))
}

type errAs string

func (e errAs) Error() string { return string(e) }
