package utils

import (
	"strings"
	"testing"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode error: %v", err)
		}
		if len(code) != InviteCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), InviteCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	// 100 draws from a 32^6 space should not collide
	if len(seen) < 99 {
		t.Fatalf("only %d distinct codes out of 100", len(seen))
	}
}
