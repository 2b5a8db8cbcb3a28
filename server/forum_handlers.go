package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/internal/utils"
)

func (s *Server) CourseForumsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, err := pathID(r, paramCourseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		forums, err := s.services.LMS.GetForums(r.Context(), courseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]apimodel.ForumResponse, 0, len(forums))
		for _, f := range forums {
			forumCourse := f.Course
			if forumCourse == 0 {
				forumCourse = courseID
			}
			resp = append(resp, apimodel.ForumResponse{
				ID:       f.ID,
				CourseID: forumCourse,
				Name:     f.Name,
				Intro:    f.Intro,
				Type:     f.Type,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) ForumDiscussionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forumID, err := pathID(r, paramForumID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		discussions, err := s.services.LMS.GetForumDiscussions(r.Context(), forumID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]apimodel.DiscussionResponse, 0, len(discussions))
		for _, d := range discussions {
			resp = append(resp, apimodel.DiscussionResponse{
				ID:           d.ID,
				Name:         d.Name,
				Message:      d.Message,
				UserID:       d.UserID,
				UserFullName: d.UserFullName,
				Created:      d.Created,
				Modified:     d.Modified,
				NumReplies:   d.NumReplies,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) DiscussionPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discussionID, err := pathID(r, paramDiscussionID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		posts, err := s.services.LMS.GetDiscussionPosts(r.Context(), discussionID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]apimodel.PostResponse, 0, len(posts))
		for _, p := range posts {
			postDiscussion := p.Discussion
			if postDiscussion == 0 {
				postDiscussion = discussionID
			}
			resp = append(resp, apimodel.PostResponse{
				ID:           p.ID,
				DiscussionID: postDiscussion,
				ParentID:     p.Parent,
				UserID:       p.UserID,
				UserFullName: p.UserFullName,
				Message:      p.Message,
				Created:      p.Created,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ReplyHandler answers the first post of a discussion.
func (s *Server) ReplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discussionID, err := pathID(r, paramDiscussionID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req apimodel.ReplyRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			writeError(w, r, err)
			return
		}

		posts, err := s.services.LMS.GetDiscussionPosts(r.Context(), discussionID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if len(posts) == 0 {
			writeError(w, r, errors.Wrapf(errors.ErrNotFound, "discussion %d", discussionID))
			return
		}

		added, ok := s.services.LMS.AddDiscussionPost(r.Context(), posts[0].ID, req.Message)
		if !ok {
			writeError(w, r, fmt.Errorf("%w: reply was not accepted", errors.ErrUnsuccessful))
			return
		}
		writeJSON(w, http.StatusOK, apimodel.ReplyResponse{
			Success: true,
			PostID:  utils.Ptr(added.PostID),
			Message: "Reply posted",
		})
	}
}
