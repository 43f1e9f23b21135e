package transfer

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is a stateless gift proposal: everything needed to confirm or cancel
// travels inside the component custom ID, so no pending-transfer record exists
// server-side. The encoded fields are advisory only; ConfirmGift re-validates
// all of them against current state.
type Token struct {
	SenderID    string
	RecipientID string
	CharacterID int64
}

// Encode renders the token for embedding in a component custom ID.
func (t Token) Encode() string {
	return fmt.Sprintf("%s:%s:%d", t.SenderID, t.RecipientID, t.CharacterID)
}

// ParseToken decodes a token produced by Encode. Malformed input is a
// validation error; no store call has happened yet.
func ParseToken(s string) (Token, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("malformed gift token %q", s)
	}

	characterID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("malformed character id in gift token %q", s)
	}

	if parts[0] == "" || parts[1] == "" {
		return Token{}, fmt.Errorf("missing user id in gift token %q", s)
	}

	return Token{
		SenderID:    parts[0],
		RecipientID: parts[1],
		CharacterID: characterID,
	}, nil
}
