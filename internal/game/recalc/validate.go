package recalc

import (
	"fmt"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// Severity classifies a validation finding.
type Severity string

// Validation severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one build-consistency finding. Validation reports every issue
// it finds in one pass so a caller can display them together.
type Issue struct {
	Severity Severity
	Code     string
	Message  string
}

// Issue codes.
const (
	CodeInvalidIdentity = "invalid_identity"
	CodeUnmappedBreed   = "unmapped_breed"
	CodeUnmappedProf    = "unmapped_profession"
	CodeOverspentIP     = "overspent_ip"
	CodeUnknownSkill    = "unknown_skill"
	CodeValueAboveCap   = "value_above_cap"
	CodeDerivedTrained  = "derived_stat_trained"
)

// Validate checks a snapshot (and its sheet, when present) for build
// consistency and returns every finding. An empty slice means the build
// is consistent.
func Validate(t ruleset.Tables, snap *character.Snapshot) []Issue {
	var issues []Issue

	if err := snap.Validate(); err != nil {
		issues = append(issues, Issue{SeverityError, CodeInvalidIdentity, err.Error()})
		return issues
	}
	if _, ok := t.Breed(snap.Breed); !ok {
		issues = append(issues, Issue{SeverityError, CodeUnmappedBreed,
			fmt.Sprintf("breed %d is not defined in ruleset %s", snap.Breed, t.Version())})
	}
	if _, ok := t.Profession(snap.Profession); !ok {
		issues = append(issues, Issue{SeverityError, CodeUnmappedProf,
			fmt.Sprintf("profession %d is not defined in ruleset %s", snap.Profession, t.Version())})
	}
	if len(issues) > 0 {
		return issues
	}

	ledger := ComputeLedger(t, snap)
	if ledger.Remaining < 0 {
		issues = append(issues, Issue{SeverityError, CodeOverspentIP,
			fmt.Sprintf("spent %d IP with only %d available", ledger.TotalUsed, ledger.TotalAvailable)})
	}

	for skillID, raw := range snap.Skills {
		def, ok := t.Skill(skillID)
		if !ok {
			issues = append(issues, Issue{SeverityWarning, CodeUnknownSkill,
				fmt.Sprintf("skill %d is not defined in ruleset %s", skillID, t.Version())})
			continue
		}
		if def.Derived && raw > 0 {
			issues = append(issues, Issue{SeverityError, CodeDerivedTrained,
				fmt.Sprintf("%s is a derived stat and cannot carry %d trained points", def.Name, raw)})
		}
	}

	if snap.Sheet != nil {
		for a := 0; a < character.NumAbilities; a++ {
			rec := snap.Sheet.Abilities[a]
			if rec.NaturalTotal() > rec.Cap-rec.BonusTotal() {
				issues = append(issues, Issue{SeverityError, CodeValueAboveCap,
					fmt.Sprintf("%s natural value %d exceeds natural cap %d",
						character.AbilityName(a), rec.NaturalTotal(), rec.Cap-rec.BonusTotal())})
			}
		}
		for skillID, rec := range snap.Sheet.Skills {
			if rec.NaturalTotal() > rec.Cap-rec.BonusTotal() {
				issues = append(issues, Issue{SeverityError, CodeValueAboveCap,
					fmt.Sprintf("skill %d natural value %d exceeds natural cap %d",
						skillID, rec.NaturalTotal(), rec.Cap-rec.BonusTotal())})
			}
		}
	}

	return issues
}
