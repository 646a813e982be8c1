package domain

import "strings"

type BloodGroup string

var bloodGroups = map[BloodGroup]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

// NormalizeBloodGroup 去空白并转大写，"o+" -> "O+"
func NormalizeBloodGroup(s string) BloodGroup {
	return BloodGroup(strings.ToUpper(strings.TrimSpace(s)))
}

func (g BloodGroup) Valid() bool {
	_, ok := bloodGroups[g]
	return ok
}

func ParseBloodGroup(s string) (BloodGroup, error) {
	g := NormalizeBloodGroup(s)
	if !g.Valid() {
		return "", Validation("Invalid blood group")
	}
	return g, nil
}
