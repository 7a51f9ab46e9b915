package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/sakura/internal/forms"
	"github.com/haguru/sakura/internal/models/dto"
	"github.com/haguru/sakura/internal/userservice"
	"github.com/haguru/sakura/internal/views"
)

// Login handles JSON login requests.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req, http.MethodPost)
		r.incCounter(LoginFailedTotal)
		return
	}

	r.incCounter(LoginRequestsTotal)

	if req.Header.Get(ContentType) != ContentTypeJson {
		r.errorResponse(w, http.StatusBadRequest, fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), ErrInvalidContentType)
		r.incCounter(LoginFailedTotal)
		return
	}

	loginRequest := &dto.LoginRequestDTO{}
	if err := json.NewDecoder(req.Body).Decode(loginRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, ErrInvalidRequestBody)
		r.incCounter(LoginFailedTotal)
		return
	}

	start := time.Now()
	_, err := r.UserService.AuthenticateUser(req.Context(), forms.LoginForm{
		Email:    loginRequest.Email,
		Password: loginRequest.Password,
	})
	r.observeSince(LoginDurationSeconds, start)
	if err != nil {
		r.incCounter(LoginFailedTotal)
		r.writeFormError(w, FormLogin, err)
		return
	}

	r.incCounter(LoginSuccessTotal)
	r.writeJSON(w, http.StatusOK, &dto.FormResponseDTO{Message: views.AlertLoginSuccessful})
}

// Register handles JSON registration requests.
func (r *Route) Register(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req, http.MethodPost)
		return
	}

	r.incCounter(SignupRequestsTotal)

	if req.Header.Get(ContentType) != ContentTypeJson {
		r.errorResponse(w, http.StatusBadRequest, fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), ErrInvalidContentType)
		r.incCounter(SignupErrorsTotal)
		return
	}

	signupRequest := &dto.SignupRequestDTO{}
	if err := json.NewDecoder(req.Body).Decode(signupRequest); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, ErrInvalidRequestBody)
		r.incCounter(SignupErrorsTotal)
		return
	}

	start := time.Now()
	err := r.UserService.RegisterUser(req.Context(), forms.RegisterForm{
		Username: signupRequest.Username,
		Email:    signupRequest.Email,
		Password: signupRequest.Password,
	})
	r.observeSince(SignupDurationSeconds, start)
	if err != nil {
		r.incCounter(SignupErrorsTotal)
		r.writeFormError(w, FormRegister, err)
		return
	}

	r.incCounter(SignupSuccessTotal)
	r.writeJSON(w, http.StatusCreated, &dto.FormResponseDTO{Message: views.AlertSignupSuccessful})
}

// writeFormError maps a flow error to its status and alert text.
func (r *Route) writeFormError(w http.ResponseWriter, form string, err error) {
	if fieldErrors := r.countValidation(form, err); fieldErrors != nil {
		r.writeJSON(w, http.StatusBadRequest, &dto.FormResponseDTO{
			Message: fieldErrors.Error(),
			Errors:  fieldErrors.Map(),
		})
		return
	}

	switch {
	case errors.Is(err, userservice.ErrInvalidCredentials):
		r.writeJSON(w, http.StatusUnauthorized, &dto.FormResponseDTO{Message: views.AlertInvalidCredentials})
	case errors.Is(err, userservice.ErrUserExists):
		r.writeJSON(w, http.StatusConflict, &dto.FormResponseDTO{Message: views.AlertUserExists})
	default:
		r.Logger.Error("Form submission failed", "form", form, "error", err)
		r.writeJSON(w, http.StatusInternalServerError, &dto.FormResponseDTO{Message: MsgSomethingWentWrong})
	}
}
