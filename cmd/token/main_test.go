package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"ops-1", "--admin", "--secret", "test-secret", "--ttl", "1h"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "expires at")

	svc, err := jwt.NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(strings.TrimSpace(out.String()))
	require.NoError(t, err)

	claims, err := token.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims[jwt.ClaimOperatorID])
	assert.Equal(t, true, claims[jwt.ClaimIsAdmin])
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ops-1", "--secret", ""})
	assert.Error(t, cmd.Execute())
}
