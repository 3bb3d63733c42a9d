package aggregate

import (
	"regexp"
	"strings"
)

// Role classifies a canonical column by its category portion
type Role int

const (
	RoleNone          Role = iota // Column carries no register metric
	RolePatients                  // Patient count on the register
	RolePrevalence                // Full-list prevalence per 1000
	RoleSubPrevalence             // Subset-population prevalence per 1000 (e.g. over-50s)
)

var (
	rePrevalence = regexp.MustCompile(`(?i)prevalence`)
	reAgeBanded  = regexp.MustCompile(`\d+\s*\+`)
	rePatients   = regexp.MustCompile(`(?i)number of patients|^\s*register\s*$`)

	reRepetition = regexp.MustCompile(`\.\d+$`)
	reAgeSuffix  = regexp.MustCompile(`\s\d+\+$`)
)

// ClassifyColumn splits a canonical key into role and base condition.
// Keys without a category segment, and categories matching no role
// pattern, classify as RoleNone. Subset prevalence is matched before
// full prevalence so the age marker wins.
func ClassifyColumn(key string) (Role, string) {
	category, register, ok := strings.Cut(key, "|")
	if !ok {
		return RoleNone, ""
	}

	var role Role
	switch {
	case rePrevalence.MatchString(category) && reAgeBanded.MatchString(category):
		role = RoleSubPrevalence
	case rePrevalence.MatchString(category):
		role = RolePrevalence
	case rePatients.MatchString(category):
		role = RolePatients
	default:
		return RoleNone, ""
	}

	return role, BaseCondition(register)
}

// BaseCondition strips a trailing ".N" repetition suffix and a
// trailing age-band suffix (" NN+") from a register name, so that
// physically repeated columns group under one logical condition.
func BaseCondition(register string) string {
	register = reRepetition.ReplaceAllString(register, "")
	register = reAgeSuffix.ReplaceAllString(register, "")
	return strings.TrimSpace(register)
}
