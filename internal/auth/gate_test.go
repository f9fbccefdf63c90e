package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"knoxtech-api/internal/domain"
)

func newTestGate(t *testing.T) (*Gate, *Tokens) {
	t.Helper()
	tokens := NewTokens([]byte("gate-secret"), time.Hour)
	return NewGate(tokens), tokens
}

func bearer(t *testing.T, tokens *Tokens, id Identity) string {
	t.Helper()
	tok, err := tokens.Issue(id)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestGateCheck(t *testing.T) {
	t.Parallel()

	gate, tokens := newTestGate(t)
	admin := Identity{UserID: 1, Email: "ops@knoxtech.net", Role: domain.RoleAdmin}
	user := Identity{UserID: 2, Email: "staff@knoxtech.net", Role: domain.RoleUser}

	tests := []struct {
		name   string
		header string
		want   Decision
		reason error
	}{
		{name: "no header", header: "", want: DecisionRejected, reason: ErrMissingToken},
		{name: "not bearer", header: "Basic abc", want: DecisionRejected, reason: ErrMalformedToken},
		{name: "empty bearer", header: "Bearer ", want: DecisionRejected, reason: ErrMalformedToken},
		{name: "garbage token", header: "Bearer not.a.jwt", want: DecisionRejected, reason: ErrMalformedToken},
		{name: "valid admin", header: bearer(t, tokens, admin), want: DecisionAuthorized},
		{name: "valid user", header: bearer(t, tokens, user), want: DecisionAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := gate.Check(tt.header)
			require.Equal(t, tt.want, out.Decision)
			if tt.reason != nil {
				require.ErrorIs(t, out.Reason, tt.reason)
			}
		})
	}
}

func TestGateCheckAdmin(t *testing.T) {
	t.Parallel()

	gate, tokens := newTestGate(t)
	admin := Identity{UserID: 1, Email: "ops@knoxtech.net", Role: domain.RoleAdmin}
	user := Identity{UserID: 2, Email: "staff@knoxtech.net", Role: domain.RoleUser}

	out := gate.CheckAdmin(bearer(t, tokens, admin))
	require.Equal(t, DecisionAuthorized, out.Decision)
	require.Equal(t, admin, out.Identity)

	// Verified but under-privileged is Forbidden, not Rejected.
	out = gate.CheckAdmin(bearer(t, tokens, user))
	require.Equal(t, DecisionForbidden, out.Decision)
	require.Equal(t, user, out.Identity)

	// Unverifiable stays Rejected even on the admin gate.
	out = gate.CheckAdmin("")
	require.Equal(t, DecisionRejected, out.Decision)
	require.ErrorIs(t, out.Reason, ErrMissingToken)
}

func TestGateCheckIdempotent(t *testing.T) {
	t.Parallel()

	gate, tokens := newTestGate(t)
	header := bearer(t, tokens, Identity{UserID: 7, Email: "a@x.com", Role: domain.RoleUser})

	first := gate.Check(header)
	second := gate.Check(header)
	require.Equal(t, first, second)
}
