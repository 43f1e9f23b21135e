package transfer

import "testing"

func TestToken_EncodeParseRoundTrip(t *testing.T) {
	in := Token{SenderID: "111111111111111111", RecipientID: "222222222222222222", CharacterID: 42}

	out, err := ParseToken(in.Encode())
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if out != in {
		t.Errorf("ParseToken() = %+v, want %+v", out, in)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too few fields", "111:222"},
		{"too many fields", "111:222:42:extra"},
		{"non-numeric character id", "111:222:abc"},
		{"missing sender", ":222:42"},
		{"missing recipient", "111::42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.input); err == nil {
				t.Errorf("ParseToken(%q) error = nil, want error", tt.input)
			}
		})
	}
}
