package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/moodle"
)

// CoursesHandler lists the courses the caller is enrolled in.
func (s *Server) CoursesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := mustClaims(r)

		courses, err := s.services.LMS.GetUserCourses(r.Context(), claims.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]apimodel.CourseResponse, 0, len(courses))
		for _, c := range courses {
			resp = append(resp, courseResponse(c))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CourseHandler returns one of the caller's courses.
func (s *Server) CourseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := mustClaims(r)
		courseID, err := pathID(r, paramCourseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		courses, err := s.services.LMS.GetUserCourses(r.Context(), claims.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		for _, c := range courses {
			if c.ID == courseID {
				writeJSON(w, http.StatusOK, courseResponse(c))
				return
			}
		}
		writeError(w, r, errors.Wrapf(errors.ErrNotFound, "course %d", courseID))
	}
}

func (s *Server) CourseContentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, err := pathID(r, paramCourseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		sections, err := s.services.LMS.GetCourseContents(r.Context(), courseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]apimodel.CourseContentResponse, 0, len(sections))
		for _, section := range sections {
			modules := section.Modules
			if modules == nil {
				modules = []json.RawMessage{}
			}
			resp = append(resp, apimodel.CourseContentResponse{
				ID:      section.ID,
				Name:    section.Name,
				Summary: section.Summary,
				Modules: modules,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func courseResponse(c moodle.Course) apimodel.CourseResponse {
	return apimodel.CourseResponse{
		ID:        c.ID,
		ShortName: c.ShortName,
		FullName:  c.FullName,
		Summary:   c.Summary,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
}
