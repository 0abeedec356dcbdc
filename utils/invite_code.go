package utils

import "crypto/rand"

// Invite codes exclude 0/O and 1/I to stay readable when shared verbally.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the fixed length of friend invite codes.
const InviteCodeLength = 6

// GenerateInviteCode returns a random 6-character code. Uniqueness is
// enforced by the database index; callers retry on conflict.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
