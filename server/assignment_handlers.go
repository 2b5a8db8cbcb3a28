package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/moodle"
)

func (s *Server) CourseAssignmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, err := pathID(r, paramCourseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		assignments, err := s.services.LMS.GetAssignments(r.Context(), courseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]apimodel.AssignmentResponse, 0, len(assignments))
		for _, a := range assignments {
			resp = append(resp, assignmentResponse(a, courseID))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) AssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := pathID(r, paramAssignmentID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		assignment, ok := s.services.LMS.GetAssignmentByID(r.Context(), assignmentID)
		if !ok {
			writeError(w, r, errors.Wrapf(errors.ErrNotFound, "assignment %d", assignmentID))
			return
		}
		writeJSON(w, http.StatusOK, assignmentResponse(*assignment, 0))
	}
}

// SubmissionStatusHandler never fails on upstream errors; the LMS client
// reports a new, ungraded attempt instead.
func (s *Server) SubmissionStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := mustClaims(r)
		assignmentID, err := pathID(r, paramAssignmentID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		status := s.services.LMS.GetSubmissionStatus(r.Context(), assignmentID, claims.ID)
		writeJSON(w, http.StatusOK, apimodel.SubmissionStatusResponse{
			Status:   status.Status,
			Graded:   status.Graded,
			Grade:    status.Grade,
			Feedback: status.Feedback,
		})
	}
}

func (s *Server) SubmitAssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := pathID(r, paramAssignmentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req apimodel.SubmitAssignmentRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			writeError(w, r, err)
			return
		}

		if !s.services.LMS.SubmitAssignment(r.Context(), assignmentID, req.Text) {
			writeError(w, r, fmt.Errorf("%w: submission was not accepted", errors.ErrUnsuccessful))
			return
		}
		writeJSON(w, http.StatusOK, apimodel.SubmitAssignmentResponse{
			Success: true,
			Message: "Submission sent",
		})
	}
}

// assignmentResponse falls back to courseID when the LMS omits the course.
func assignmentResponse(a moodle.Assignment, courseID int64) apimodel.AssignmentResponse {
	if a.Course != 0 {
		courseID = a.Course
	}
	return apimodel.AssignmentResponse{
		ID:                       a.ID,
		CourseID:                 courseID,
		Name:                     a.Name,
		Intro:                    a.Intro,
		DueDate:                  a.DueDate,
		AllowSubmissionsFromDate: a.AllowSubmissionsFromDate,
		Grade:                    a.Grade,
	}
}
