package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/service"
)

// Signup handles POST /signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.accounts.Signup(r.Context(), service.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Message: "User created successfully", User: userToResponse(user)})
}

// Login handles POST /login. It accepts a JSON body or an HTML form with
// identifier (username or email) and password, and sets the session cookie.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			s.respondError(w, r, badRequest("malformed form body"))
			return
		}
		req.Identifier, req.Password = r.PostFormValue("identifier"), r.PostFormValue("password")
	} else if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.accounts.Authenticate(r.Context(), req.Identifier, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.sessions.SetCookie(w, token)

	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: userToResponse(user)})
}

// Logout handles GET /logout: it expires the session cookie and redirects to
// the landing page. It succeeds whether or not a session exists.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, s.landingURL, http.StatusFound)
}

// GetMe handles GET /me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.GetByID(r.Context(), caller(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user))
}
