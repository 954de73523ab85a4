package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceEnvVars(t *testing.T) {
	t.Setenv("CAMFEED_TEST_USER", "admin")

	s := ReplaceEnvVars("user: ${CAMFEED_TEST_USER}")
	require.Equal(t, "user: admin", s)

	s = ReplaceEnvVars("pass: ${CAMFEED_TEST_MISSING:secret}")
	require.Equal(t, "pass: secret", s)

	s = ReplaceEnvVars("raw: ${CAMFEED_TEST_MISSING}")
	require.Equal(t, "raw: ${CAMFEED_TEST_MISSING}", s)
}
