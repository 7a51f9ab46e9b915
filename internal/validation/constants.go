package validation

const (
	MsgUsernameRequired = "Please enter your username"
	MsgUsernameInvalid  = "Username should contain only letters"
	MsgEmailRequired    = "Please enter your email"
	MsgEmailInvalid     = "Please enter a valid email"
	MsgPasswordRequired = "Please enter your password"
	MsgPasswordInvalid  = "Password must be at least 8 characters, include uppercase, lowercase, and a number" // #nosec G101
	MsgInvalidValue     = "Invalid value"

	// validator tags registered by NewValidator
	TagEmailShape       = "email_shape"
	TagLetters          = "letters"
	TagPasswordStrength = "password_strength"

	FormTag = "form"
)
