package cryptox_test

import (
	"testing"

	"github.com/conduitlabs/conduit/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	t.Parallel()

	code, err := cryptox.GenerateNumericCode(8)
	require.NoError(t, err)
	require.Len(t, code, 8)
	for _, c := range code {
		require.True(t, c >= '0' && c <= '9')
	}

	_, err = cryptox.GenerateNumericCode(0)
	require.Error(t, err)
}

func TestFingerprintDeterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t, cryptox.Fingerprint("body"), cryptox.Fingerprint("body"))
	require.NotEqual(t, cryptox.Fingerprint("body"), cryptox.Fingerprint("other"))
}
