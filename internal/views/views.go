// Package views names the destinations of the forms application and the
// alert texts shown when moving between them.
package views

// View is a logical destination. Its value is the path it is served on.
type View string

const (
	Landing  View = "/"
	Login    View = "/login"
	Register View = "/register"
)

const (
	AlertLoginSuccessful    = "Login Successful!"
	AlertInvalidCredentials = "Invalid Username or Password"
	AlertUserExists         = "User already exists!"
	AlertSignupSuccessful   = "Sign-up successful!"
)

// Notice keys carry a success alert across a redirect in the query string.
const (
	NoticeParam  = "notice"
	NoticeLogin  = "login"
	NoticeSignup = "signup"
)

var notices = map[string]string{
	NoticeLogin:  AlertLoginSuccessful,
	NoticeSignup: AlertSignupSuccessful,
}

// Alert returns the alert text for a notice key. Unknown keys yield "".
func Alert(notice string) string {
	return notices[notice]
}

// Path returns the path of v.
func (v View) Path() string {
	return string(v)
}

// WithNotice returns the path of v carrying the given notice key.
func (v View) WithNotice(notice string) string {
	if notice == "" {
		return v.Path()
	}
	return v.Path() + "?" + NoticeParam + "=" + notice
}

// AfterLogin is where a successful login leads.
func AfterLogin() string {
	return Landing.WithNotice(NoticeLogin)
}

// AfterRegister is where a successful registration leads. The login form
// it lands on is empty.
func AfterRegister() string {
	return Login.WithNotice(NoticeSignup)
}
