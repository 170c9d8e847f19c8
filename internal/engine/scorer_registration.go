// internal/engine/scorer_registration.go
package engine

import (
	"fmt"
	"strings"
)

type registrationScorer struct {
	t Thresholds
}

func (registrationScorer) Category() Category { return CategoryRegistration }

func (s registrationScorer) Score(f *Findings) (float64, []Flag) {
	reg := f.Registration
	if reg.Unavailable {
		return NeutralScore, nil
	}

	score := 0.0
	var flags []Flag

	if !reg.Verified {
		score += 0.5
		flags = append(flags, RedFlag(CategoryRegistration, SeverityHigh,
			"Unable to verify company registration"))
	}

	switch strings.ToLower(reg.Status) {
	case RegistrationStatusDissolved, RegistrationStatusInactive, RegistrationStatusSuspended:
		score += 0.8
		flags = append(flags, RedFlag(CategoryRegistration, SeverityCritical,
			fmt.Sprintf("Company status: %s", strings.ToLower(reg.Status))))
	case RegistrationStatusActive:
		flags = append(flags, GreenFlag(CategoryRegistration,
			"Company is actively registered"))
	}

	if reg.AgeKnown {
		if reg.AgeDays < s.t.YoungCompanyDays {
			score += 0.3
			flags = append(flags, RedFlag(CategoryRegistration, SeverityMedium,
				fmt.Sprintf("Company is very new (%d days old)", reg.AgeDays)))
		} else if reg.AgeDays > s.t.EstablishedDays {
			flags = append(flags, GreenFlag(CategoryRegistration,
				fmt.Sprintf("Established company (%d years old)", reg.AgeDays/365)))
		}
	}

	if len(strings.TrimSpace(reg.RegisteredAddress)) < 10 {
		score += 0.2
		flags = append(flags, RedFlag(CategoryRegistration, SeverityMedium,
			"No valid registered address found"))
	}

	if reg.OfficerCount == 0 {
		score += 0.3
		flags = append(flags, RedFlag(CategoryRegistration, SeverityMedium,
			"No officers or directors listed"))
	}

	return clip01(score), flags
}
