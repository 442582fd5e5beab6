package gate

import "strings"

const tokenSegment = "token"

// KeyBuilder derives session store keys as {namespace}:{loginType}:token:{token}
type KeyBuilder struct {
	Namespace string
	LoginType string
}

// Build returns the store key for token
func (b KeyBuilder) Build(token string) string {
	return strings.Join([]string{b.Namespace, b.LoginType, tokenSegment, token}, ":")
}
