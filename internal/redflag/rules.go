package redflag

import (
	"dealpulse/pkg/contracts/domain"
)

// CategoryRule declares the trigger phrases and base severity for one
// red-flag category. The scanner consumes this table; adding a category or
// phrase never touches scan logic.
type CategoryRule struct {
	Category domain.FindingCategory
	Base     domain.Severity
	Triggers []string
}

// Rules is the due-diligence red-flag table. Triggers are matched as
// case-insensitive whole-word phrases.
var Rules = []CategoryRule{
	{
		Category: domain.CategoryLitigation,
		Base:     domain.SeverityMedium,
		Triggers: []string{
			"litigation", "lawsuit", "legal proceedings", "class action",
			"plaintiff", "settlement of claims",
		},
	},
	{
		Category: domain.CategoryRegulatoryAction,
		Base:     domain.SeverityMedium,
		Triggers: []string{
			"regulatory action", "sec investigation", "consent decree",
			"enforcement action", "penalty", "fine", "violation", "subpoena",
			"cease and desist",
		},
	},
	{
		Category: domain.CategoryManagementTurnover,
		Base:     domain.SeverityLow,
		Triggers: []string{
			"resignation", "resigned", "management turnover", "stepped down",
			"departure of", "terminated the employment",
		},
	},
	{
		Category: domain.CategoryRestatement,
		Base:     domain.SeverityHigh,
		Triggers: []string{
			"restatement", "restate", "accounting irregularities",
			"material weakness", "audit committee investigation",
		},
	},
	{
		Category: domain.CategoryGoingConcern,
		Base:     domain.SeverityHigh,
		Triggers: []string{
			"going concern", "substantial doubt", "insolvency",
		},
	},
}

// Intensifiers escalate a finding one severity level when one appears,
// negation-free, in the same sentence as the trigger.
var Intensifiers = []string{
	"material", "significant", "substantial", "severe", "major",
}

// Negations de-escalate a finding one level when one precedes the trigger
// within the same clause. Scoping is clause-local; ambiguous long-range
// negation is an accepted limitation.
var Negations = []string{
	"no", "not", "without", "none", "never", "denies", "denied", "neither",
}
