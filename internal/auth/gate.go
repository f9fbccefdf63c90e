package auth

import (
	"strings"

	"knoxtech-api/internal/domain"
)

// Decision is the terminal state of an authorization check.
type Decision int

const (
	// DecisionAuthorized means the token verified and any role requirement held.
	DecisionAuthorized Decision = iota
	// DecisionRejected means the caller's identity is unverifiable.
	DecisionRejected
	// DecisionForbidden means the identity verified but lacks the required role.
	DecisionForbidden
)

// Outcome is the result of running the gate: a tagged variant of
// Authorized{Identity} | Rejected{Reason} | Forbidden{Identity}. Reason is
// only set for Rejected and is for server-side logging; clients get a
// generic denial.
type Outcome struct {
	Decision Decision
	Identity Identity
	Reason   error
}

// Gate checks Authorization header values against the token verifier. It is a
// pure function of the header and the current time, independent of any HTTP
// framework.
type Gate struct {
	tokens *Tokens
}

func NewGate(tokens *Tokens) *Gate {
	return &Gate{tokens: tokens}
}

// Check runs the verification state machine: extract the bearer token, verify
// it, and either authorize or reject. A missing or non-bearer header rejects
// with ErrMissingToken without touching the verifier.
func (g *Gate) Check(header string) Outcome {
	header = strings.TrimSpace(header)
	if header == "" {
		return Outcome{Decision: DecisionRejected, Reason: ErrMissingToken}
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return Outcome{Decision: DecisionRejected, Reason: ErrMalformedToken}
	}

	id, err := g.tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	if err != nil {
		return Outcome{Decision: DecisionRejected, Reason: err}
	}
	return Outcome{Decision: DecisionAuthorized, Identity: id}
}

// CheckAdmin is Check followed by a role gate. Forbidden is only ever reached
// from a verified identity; an unverifiable caller stays Rejected.
func (g *Gate) CheckAdmin(header string) Outcome {
	out := g.Check(header)
	if out.Decision != DecisionAuthorized {
		return out
	}
	if out.Identity.Role != domain.RoleAdmin {
		return Outcome{Decision: DecisionForbidden, Identity: out.Identity}
	}
	return out
}
