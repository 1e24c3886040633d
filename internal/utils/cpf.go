package utils

import "regexp"

var nonDigits = regexp.MustCompile(`\D`)

// ValidateCPF validates a CPF number, with or without formatting. It checks
// length, the all-same-digit degenerate cases, and both check digits.
func ValidateCPF(cpf string) bool {
	cpf = nonDigits.ReplaceAllString(cpf, "")
	if len(cpf) != 11 || allSameDigits(cpf) {
		return false
	}

	weights1 := []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	return checkDigit(cpf, weights1) == int(cpf[9]-'0') &&
		checkDigit(cpf, weights2) == int(cpf[10]-'0')
}

// ValidateCNPJ validates a CNPJ number, with or without formatting
func ValidateCNPJ(cnpj string) bool {
	cnpj = nonDigits.ReplaceAllString(cnpj, "")
	if len(cnpj) != 14 || allSameDigits(cnpj) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return checkDigit(cnpj, weights1) == int(cnpj[12]-'0') &&
		checkDigit(cnpj, weights2) == int(cnpj[13]-'0')
}

// checkDigit computes the mod-11 check digit over the first len(weights)
// digits of the document
func checkDigit(doc string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(doc[i]-'0') * w
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func allSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
