package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/jrsteele09/lms-mobile-gateway/auth"
	"github.com/jrsteele09/lms-mobile-gateway/internal/utils"
)

// GoogleLoginHandler exchanges a Google ID token for a session.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.GoogleLoginRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			writeError(w, r, err)
			return
		}
		if err := requireField(strings.TrimSpace(req.IDToken), "id_token"); err != nil {
			writeError(w, r, err)
			return
		}

		session, err := s.services.Auth.LoginWithIDToken(r.Context(), req.IDToken)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeLoginResponse(w, session)
	}
}

// GoogleCodeLoginHandler exchanges a Google server auth code for a session.
func (s *Server) GoogleCodeLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.GoogleCodeLoginRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			writeError(w, r, err)
			return
		}
		if err := requireField(strings.TrimSpace(req.Code), "code"); err != nil {
			writeError(w, r, err)
			return
		}

		session, err := s.services.Auth.LoginWithAuthCode(r.Context(), req.Code)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeLoginResponse(w, session)
	}
}

func (s *Server) DevLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.DevLoginRequest
		if err := decodeJSON(w, r, &req, true); err != nil {
			writeError(w, r, err)
			return
		}

		session, err := s.services.Auth.DevLogin(r.Context(), req.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeLoginResponse(w, session)
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.RefreshRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			writeError(w, r, err)
			return
		}

		session, err := s.services.Auth.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeLoginResponse(w, session)
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := mustClaims(r)
		writeJSON(w, http.StatusOK, apimodel.UserResponse{
			ID:       claims.ID,
			Email:    claims.Email,
			FullName: claims.FullName,
		})
	}
}

// MoodleStatusHandler reports whether the LMS accepts the service token.
// An unreachable LMS is a normal answer, not an error.
func (s *Server) MoodleStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := s.services.LMS.GetSiteInfo(r.Context())
		if err != nil {
			writeJSON(w, http.StatusOK, apimodel.MoodleStatusResponse{
				Connected: false,
				Error:     utils.Ptr(err.Error()),
			})
			return
		}
		writeJSON(w, http.StatusOK, apimodel.MoodleStatusResponse{
			Connected: true,
			SiteName:  utils.Ptr(info.SiteName),
		})
	}
}

func writeLoginResponse(w http.ResponseWriter, session *auth.Session) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	writeJSON(w, http.StatusOK, apimodel.LoginResponse{
		AccessToken:  session.Pair.AccessToken,
		RefreshToken: session.Pair.RefreshToken,
		TokenType:    apimodel.TokenTypeBearer,
		ExpiresIn:    session.Pair.ExpiresIn,
		User: apimodel.UserResponse{
			ID:       session.User.ID,
			Email:    session.User.Email,
			FullName: session.User.FullName,
		},
	})
}
