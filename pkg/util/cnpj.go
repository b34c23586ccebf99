package util

// CNPJ: Cadastro Nacional da Pessoa Jurídica. Armazenado sempre
// normalizado (somente dígitos), validado pelo módulo 11 oficial.

const cnpjLength = 14

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeTaxID strips formatting from a CNPJ, keeping digits only
func NormalizeTaxID(cnpj string) string {
	digits := make([]byte, 0, cnpjLength)
	for i := 0; i < len(cnpj); i++ {
		if cnpj[i] >= '0' && cnpj[i] <= '9' {
			digits = append(digits, cnpj[i])
		}
	}
	return string(digits)
}

// ValidateCNPJ checks length, rejects repeated-digit sequences and
// verifies both check digits (dígitos verificadores)
func ValidateCNPJ(cnpj string) bool {
	digits := NormalizeTaxID(cnpj)
	if len(digits) != cnpjLength {
		return false
	}

	// 00.000.000/0000-00 e afins passam no módulo 11 mas não são válidos
	allSame := true
	for i := 1; i < cnpjLength; i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	first := cnpjCheckDigit(digits[:12], cnpjFirstWeights)
	if int(digits[12]-'0') != first {
		return false
	}

	second := cnpjCheckDigit(digits[:13], cnpjSecondWeights)
	return int(digits[13]-'0') == second
}

func cnpjCheckDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
