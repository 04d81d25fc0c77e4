package address

import "cadastro/internal/utils"

// CEPDigits is the number of digits in a Brazilian postal code.
const CEPDigits = 8

// NormalizeCEP strips everything but digits from raw and, when exactly eight
// remain, returns them as NNNNN-NNN.
func NormalizeCEP(raw string) (string, bool) {
	digits := utils.OnlyDigits(raw)
	if len(digits) != CEPDigits {
		return "", false
	}
	return digits[:5] + "-" + digits[5:], true
}
