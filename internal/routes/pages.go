package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/sakura/internal/forms"
	"github.com/haguru/sakura/internal/userservice"
	"github.com/haguru/sakura/internal/views"
	"github.com/haguru/sakura/pkg/helper"
)

const (
	alertSuccess = "success"
	alertError   = "error"
)

type pageData struct {
	Title     string
	Alert     string
	AlertKind string
	Errors    map[string]string
	Username  string
	Email     string
	Password  string
	Visible   bool
}

func loginPage(form forms.LoginForm) pageData {
	return pageData{
		Title:    "Login",
		Email:    form.Email,
		Password: form.Password,
		Visible:  form.Visible,
	}
}

func registerPage(form forms.RegisterForm) pageData {
	return pageData{
		Title:    "Register",
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Visible:  form.Visible,
	}
}

// withNotice sets the success alert carried by the notice query parameter.
func (p pageData) withNotice(req *http.Request) pageData {
	if alert := views.Alert(req.URL.Query().Get(views.NoticeParam)); alert != "" {
		p.Alert = alert
		p.AlertKind = alertSuccess
	}
	return p
}

func (p pageData) withError(alert string) pageData {
	p.Alert = alert
	p.AlertKind = alertError
	return p
}

// Landing renders the landing page.
func (r *Route) Landing(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != LandingRoute {
		http.NotFound(w, req)
		return
	}
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w, req, http.MethodGet)
		return
	}
	r.render(w, http.StatusOK, pageLanding, pageData{Title: "Home"}.withNotice(req))
}

// LoginPage serves the login form and handles its submissions.
func (r *Route) LoginPage(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.render(w, http.StatusOK, pageLogin, loginPage(forms.LoginForm{}).withNotice(req))
		return
	case http.MethodPost:
	default:
		r.methodNotAllowed(w, req, http.MethodGet, http.MethodPost)
		return
	}

	if err := req.ParseForm(); err != nil {
		r.Logger.Debug(ErrFailedToParseForm, "func", helper.GetFuncName(), "error", err)
		r.render(w, http.StatusBadRequest, pageLogin, loginPage(forms.LoginForm{}).withError(MsgSomethingWentWrong))
		return
	}
	form, err := forms.FromValues(forms.LoginForm{}, req.PostForm)
	if err != nil {
		r.Logger.Debug(ErrFailedToParseForm, "func", helper.GetFuncName(), "error", err)
	}

	switch action := req.PostForm.Get(ActionField); action {
	case ActionToggle:
		r.render(w, http.StatusOK, pageLogin, loginPage(form.ToggleVisibility()))
		return
	case ActionSubmit, "":
	default:
		r.Logger.Debug(ErrUnknownFormAction, "func", helper.GetFuncName(), "action", action)
		r.render(w, http.StatusBadRequest, pageLogin, loginPage(form).withError(MsgSomethingWentWrong))
		return
	}

	r.incCounter(LoginRequestsTotal)
	start := time.Now()
	_, err = r.UserService.AuthenticateUser(req.Context(), form)
	r.observeSince(LoginDurationSeconds, start)
	if err == nil {
		r.incCounter(LoginSuccessTotal)
		http.Redirect(w, req, views.AfterLogin(), http.StatusSeeOther)
		return
	}

	r.incCounter(LoginFailedTotal)
	page := loginPage(form)
	if fieldErrors := r.countValidation(FormLogin, err); fieldErrors != nil {
		page.Errors = fieldErrors.Map()
		r.render(w, http.StatusBadRequest, pageLogin, page)
		return
	}
	if errors.Is(err, userservice.ErrInvalidCredentials) {
		r.render(w, http.StatusUnauthorized, pageLogin, page.withError(views.AlertInvalidCredentials))
		return
	}
	r.Logger.Error("Login failed", "func", helper.GetFuncName(), "error", err)
	r.render(w, http.StatusInternalServerError, pageLogin, page.withError(MsgSomethingWentWrong))
}

// RegisterPage serves the registration form and handles its submissions.
func (r *Route) RegisterPage(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.render(w, http.StatusOK, pageRegister, registerPage(forms.RegisterForm{}).withNotice(req))
		return
	case http.MethodPost:
	default:
		r.methodNotAllowed(w, req, http.MethodGet, http.MethodPost)
		return
	}

	if err := req.ParseForm(); err != nil {
		r.Logger.Debug(ErrFailedToParseForm, "func", helper.GetFuncName(), "error", err)
		r.render(w, http.StatusBadRequest, pageRegister, registerPage(forms.RegisterForm{}).withError(MsgSomethingWentWrong))
		return
	}
	form, err := forms.FromValues(forms.RegisterForm{}, req.PostForm)
	if err != nil {
		r.Logger.Debug(ErrFailedToParseForm, "func", helper.GetFuncName(), "error", err)
	}

	switch action := req.PostForm.Get(ActionField); action {
	case ActionToggle:
		r.render(w, http.StatusOK, pageRegister, registerPage(form.ToggleVisibility()))
		return
	case ActionSubmit, "":
	default:
		r.Logger.Debug(ErrUnknownFormAction, "func", helper.GetFuncName(), "action", action)
		r.render(w, http.StatusBadRequest, pageRegister, registerPage(form).withError(MsgSomethingWentWrong))
		return
	}

	r.incCounter(SignupRequestsTotal)
	start := time.Now()
	err = r.UserService.RegisterUser(req.Context(), form)
	r.observeSince(SignupDurationSeconds, start)
	if err == nil {
		r.incCounter(SignupSuccessTotal)
		http.Redirect(w, req, views.AfterRegister(), http.StatusSeeOther)
		return
	}

	r.incCounter(SignupErrorsTotal)
	page := registerPage(form)
	if fieldErrors := r.countValidation(FormRegister, err); fieldErrors != nil {
		page.Errors = fieldErrors.Map()
		r.render(w, http.StatusBadRequest, pageRegister, page)
		return
	}
	if errors.Is(err, userservice.ErrUserExists) {
		r.render(w, http.StatusConflict, pageRegister, page.withError(views.AlertUserExists))
		return
	}
	r.Logger.Error("Registration failed", "func", helper.GetFuncName(), "error", err)
	r.render(w, http.StatusInternalServerError, pageRegister, page.withError(MsgSomethingWentWrong))
}

// render executes the page into a buffer first so a template error can
// still produce a clean 500.
func (r *Route) render(w http.ResponseWriter, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		r.Logger.Error(ErrFailedToRenderPage, "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set(ContentType, ContentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (r *Route) methodNotAllowed(w http.ResponseWriter, req *http.Request, allowed ...string) {
	for _, method := range allowed {
		w.Header().Add("Allow", method)
	}
	r.errorResponse(w, http.StatusMethodNotAllowed, fmt.Errorf(ErrMethodNotAllowedFormat, req.Method), ErrMethodNotAllowed)
}
