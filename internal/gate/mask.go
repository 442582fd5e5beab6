package gate

const maskPlaceholder = "****"

// MaskToken keeps the first and last four characters of token. Tokens of
// eight characters or fewer are fully hidden.
func MaskToken(token string) string {
	r := []rune(token)
	if len(r) <= 8 {
		return maskPlaceholder
	}
	return string(r[:4]) + maskPlaceholder + string(r[len(r)-4:])
}
