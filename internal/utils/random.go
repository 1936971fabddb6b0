package utils

import (
	"math/rand"
	"unicode"

	"github.com/optiwork-dev/optiwork/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

var commonFirstNames = []string{
	"alice", "bob", "carol", "david", "erin", "frank", "grace", "henry",
	"iris", "jack", "karen", "leo", "mona", "nick", "olive", "peter",
	"quinn", "rosa", "sam", "tina",
}

var commonLastNames = []string{
	"smith", "johnson", "brown", "taylor", "wilson", "davis", "clark",
	"lewis", "walker", "hall", "young", "king", "wright", "scott", "green",
	"baker", "adams", "nelson", "hill", "campbell",
}

func GenerateRandomFullName() (string, string) {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	fullName := capitalize(first) + " " + capitalize(last)
	return fullName, first + "." + last
}

var roles = []domain.Role{
	domain.RolePlanner,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsername(base string) string {
	username := base

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var idRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomID builds run identifiers such as "xKfQw174".
func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = idRunes[rand.Intn(len(idRunes))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName, base := GenerateRandomFullName()
	username := GenerateUsername(base)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}
