package models

// Categories with built-in meaning.
const (
	// CategoryUncategorized is assigned when no override or rule matches.
	CategoryUncategorized = "Uncategorized"
	// CategoryTransfer marks money moved between own accounts; it is excluded
	// from income and expense totals.
	CategoryTransfer = "Transfer"
)

// Date layouts
const (
	// DateLayoutStatement is the MM/DD/YYYY layout of exported statements.
	DateLayoutStatement = "01/02/2006"
	// DateLayoutISO is used for display lines.
	DateLayoutISO = "2006-01-02"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
