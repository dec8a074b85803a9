package service

import "math/rand"

const (
	passwordLower   = "abcdefghijklmnopqrstuvwxyz"
	passwordUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
	passwordSymbols = "!@#$%^&*"
)

// GenerateRandomPassword produces an 8-character credential guaranteed to
// contain at least one lowercase letter, one uppercase letter, one digit and
// one symbol, shuffled. It pre-fills the password field when an admin creates
// a user; it is a convenience default, not a cryptographic secret.
func GenerateRandomPassword() string {
	all := passwordLower + passwordUpper + passwordDigits + passwordSymbols
	buf := []byte{
		passwordLower[rand.Intn(len(passwordLower))],
		passwordUpper[rand.Intn(len(passwordUpper))],
		passwordDigits[rand.Intn(len(passwordDigits))],
		passwordSymbols[rand.Intn(len(passwordSymbols))],
	}
	for len(buf) < 8 {
		buf = append(buf, all[rand.Intn(len(all))])
	}
	rand.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
	return string(buf)
}
