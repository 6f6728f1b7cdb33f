package utils

import (
	"github.com/google/uuid"
)

// GenerateEphemeralKey produces a random signing key for deployments that
// did not configure one. Tokens signed with it do not survive a restart.
func GenerateEphemeralKey() string {
	return uuid.New().String() + "-" + uuid.New().String()
}
