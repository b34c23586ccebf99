package util

// Telefones são armazenados somente com dígitos: fixo com DDD tem 10,
// celular com DDD tem 11 (nono dígito).

// DigitsOnly strips every non-digit character from s
func DigitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// IsValidLandline reports whether s is a valid fixed-line number (DDD + 8 digits)
func IsValidLandline(s string) bool {
	return len(DigitsOnly(s)) == 10
}

// IsValidMobile reports whether s is a valid mobile number (DDD + 9 digits)
func IsValidMobile(s string) bool {
	return len(DigitsOnly(s)) == 11
}
