package constants

const (
	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8

	// MinTitleLength and MaxTitleLength bound the free-text task field.
	MinTitleLength = 2
	MaxTitleLength = 200

	// DueDateLayout is the accepted due date format.
	DueDateLayout = "2006-01-02"

	// ContextKeyClaims is the gin context key holding verified token claims.
	ContextKeyClaims = "claims"
)
