package server_test

import (
	"net/http"
	"testing"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/stretchr/testify/require"
)

const testCoursesBody = `[
	{"id":10,"shortname":"C10","fullname":"Course 10","summary":"<p>ten</p>","startdate":1700000000,"enddate":0},
	{"id":11,"shortname":"C11","fullname":"Course 11"}
]`

func TestCourseHandlers(t *testing.T) {
	f := setupTestFixture(t)
	f.lms.respond("core_enrol_get_users_courses", testCoursesBody)
	f.lms.respond("core_course_get_contents", `[{"id":1,"name":"Week 1","summary":"","modules":[{"id":7,"modname":"assign"}]},{"id":2,"name":"Week 2"}]`)
	s := f.server(t)
	bearer := f.accessToken(t)

	t.Run("list", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/courses", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		courses := decode[[]apimodel.CourseResponse](t, w)
		require.Len(t, courses, 2)
		require.Equal(t, int64(10), courses[0].ID)
		require.Equal(t, "Course 10", courses[0].FullName)
		require.Nil(t, courses[1].Summary)
		require.Equal(t, "5", f.lms.formFor(t, "core_enrol_get_users_courses").Get("userid"))
	})

	t.Run("one enrolled course", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/courses/11", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "C11", decode[apimodel.CourseResponse](t, w).ShortName)
	})

	t.Run("course the caller is not enrolled in", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/courses/99", bearer: bearer})
		requireError(t, w, http.StatusNotFound, "not_found")
	})

	t.Run("non numeric id", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/courses/abc", bearer: bearer})
		requireError(t, w, http.StatusBadRequest, "invalid_request")
	})

	t.Run("contents", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/courses/10/contents", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[
			{"id":1,"name":"Week 1","summary":"","modules":[{"id":7,"modname":"assign"}]},
			{"id":2,"name":"Week 2","summary":null,"modules":[]}
		]`, w.Body.String())
		require.Equal(t, "10", f.lms.formFor(t, "core_course_get_contents").Get("courseid"))
	})
}

func TestCourseHandlers_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "application error", status: http.StatusOK, body: `{"exception":"moodle_exception","errorcode":"nopermissions","message":"No permission"}`},
		{name: "HTTP error", status: http.StatusInternalServerError, body: "boom"},
		{name: "not JSON", status: http.StatusOK, body: "<html>maintenance</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			f.lms.respondStatus("core_enrol_get_users_courses", tt.status, tt.body)
			s := f.server(t)

			w := do(t, s, request{method: http.MethodGet, path: "/courses", bearer: f.accessToken(t)})
			requireError(t, w, http.StatusBadGateway, "upstream_error")
			require.NotContains(t, w.Body.String(), testServiceToken)
		})
	}
}

func TestAssignmentHandlers(t *testing.T) {
	f := setupTestFixture(t)
	f.lms.respond("mod_assign_get_assignments", `{"courses":[{"id":10,"assignments":[
		{"id":3,"course":10,"name":"Essay","intro":"Write","duedate":1700000000,"allowsubmissionsfromdate":0,"grade":100},
		{"id":4,"name":"Quiz"}
	]}]}`)
	s := f.server(t)
	bearer := f.accessToken(t)

	t.Run("course assignments", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/assignments/course/10", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assignments := decode[[]apimodel.AssignmentResponse](t, w)
		require.Len(t, assignments, 2)
		require.Equal(t, "Essay", assignments[0].Name)
		require.Equal(t, int64(10), assignments[1].CourseID)
		require.Equal(t, "10", f.lms.formFor(t, "mod_assign_get_assignments").Get("courseids[0]"))
	})

	t.Run("course without assignments", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("mod_assign_get_assignments", `{"courses":[]}`)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodGet, path: "/assignments/course/10", bearer: f.accessToken(t)})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("single assignment is not available", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/assignments/3", bearer: bearer})
		requireError(t, w, http.StatusNotFound, "not_found")
	})
}

func TestSubmissionStatusHandler(t *testing.T) {
	t.Run("graded attempt", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("mod_assign_get_submission_status", `{
			"lastattempt":{"submission":{"status":"submitted"}},
			"feedback":{"grade":{"grade":"85.00"},"gradefordisplay":"85.00 / 100.00","feedbackplugins":[{"editorfields":[{"text":"Good"}]}]}
		}`)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodGet, path: "/assignments/3/submission", bearer: f.accessToken(t)})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"submitted","graded":true,"grade":"85.00 / 100.00","feedback":"Good"}`, w.Body.String())

		form := f.lms.formFor(t, "mod_assign_get_submission_status")
		require.Equal(t, "3", form.Get("assignid"))
		require.Equal(t, "5", form.Get("userid"))
	})

	t.Run("LMS failure degrades to a new attempt", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respondStatus("mod_assign_get_submission_status", http.StatusBadGateway, "")
		s := f.server(t)

		w := do(t, s, request{method: http.MethodGet, path: "/assignments/3/submission", bearer: f.accessToken(t)})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"new","graded":false,"grade":null,"feedback":null}`, w.Body.String())
	})
}

func TestSubmitAssignmentHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("mod_assign_save_submission", `[]`)
		s := f.server(t)

		w := do(t, s, request{
			method: http.MethodPost,
			path:   "/assignments/3/submit",
			bearer: f.accessToken(t),
			body:   apimodel.SubmitAssignmentRequest{Text: "<p>My essay</p>"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.True(t, decode[apimodel.SubmitAssignmentResponse](t, w).Success)

		form := f.lms.formFor(t, "mod_assign_save_submission")
		require.Equal(t, "3", form.Get("assignmentid"))
		require.Equal(t, "<p>My essay</p>", form.Get("plugindata[onlinetext_editor][text]"))
		require.Equal(t, "1", form.Get("plugindata[onlinetext_editor][format]"))
		require.Equal(t, "0", form.Get("plugindata[onlinetext_editor][itemid]"))
	})

	t.Run("rejected", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("mod_assign_save_submission", `{"exception":"moodle_exception","errorcode":"submissionsclosed","message":"Closed"}`)
		s := f.server(t)

		w := do(t, s, request{
			method: http.MethodPost,
			path:   "/assignments/3/submit",
			bearer: f.accessToken(t),
			body:   apimodel.SubmitAssignmentRequest{Text: "late"},
		})
		requireError(t, w, http.StatusBadRequest, "unsuccessful")
	})
}

func TestForumHandlers(t *testing.T) {
	f := setupTestFixture(t)
	f.lms.respond("mod_forum_get_forums_by_courses", `[{"id":20,"course":10,"name":"News","intro":"","type":"news"}]`)
	f.lms.respond("mod_forum_get_forum_discussions", `{"discussions":[{"id":30,"name":"Welcome","message":"Hi","userid":2,"userfullname":"Admin User","created":1700000000,"modified":1700000000,"numreplies":1}]}`)
	f.lms.respond("mod_forum_get_discussion_posts", `{"posts":[{"id":40,"discussion":30,"parent":0,"userid":2,"message":"Hi"},{"id":41,"parent":40,"userid":5,"message":"Hello"}]}`)
	s := f.server(t)
	bearer := f.accessToken(t)

	t.Run("course forums", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/forums/course/10", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code)
		forums := decode[[]apimodel.ForumResponse](t, w)
		require.Len(t, forums, 1)
		require.Equal(t, int64(10), forums[0].CourseID)
		require.Equal(t, "10", f.lms.formFor(t, "mod_forum_get_forums_by_courses").Get("courseids[0]"))
	})

	t.Run("discussions", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/forums/20/discussions", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code)
		discussions := decode[[]apimodel.DiscussionResponse](t, w)
		require.Len(t, discussions, 1)
		require.Equal(t, 1, discussions[0].NumReplies)
		require.Equal(t, "20", f.lms.formFor(t, "mod_forum_get_forum_discussions").Get("forumid"))
	})

	t.Run("posts", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodGet, path: "/forums/discussions/30/posts", bearer: bearer})
		require.Equal(t, http.StatusOK, w.Code)
		posts := decode[[]apimodel.PostResponse](t, w)
		require.Len(t, posts, 2)
		require.Equal(t, int64(30), posts[1].DiscussionID)
		require.Equal(t, int64(40), posts[1].ParentID)
	})

	t.Run("reply goes to the first post", func(t *testing.T) {
		f.lms.respond("mod_forum_add_discussion_post", `{"postid":42,"warnings":[]}`)

		w := do(t, s, request{
			method: http.MethodPost,
			path:   "/forums/discussions/30/reply",
			bearer: bearer,
			body:   apimodel.ReplyRequest{Message: "Thanks"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.JSONEq(t, `{"success":true,"post_id":42,"message":"Reply posted"}`, w.Body.String())

		form := f.lms.formFor(t, "mod_forum_add_discussion_post")
		require.Equal(t, "40", form.Get("postid"))
		require.Equal(t, "Re:", form.Get("subject"))
		require.Equal(t, "Thanks", form.Get("message"))
	})

	t.Run("rejected reply", func(t *testing.T) {
		f.lms.respond("mod_forum_add_discussion_post", `{"exception":"moodle_exception","errorcode":"nopostforum","message":"No permission"}`)

		w := do(t, s, request{
			method: http.MethodPost,
			path:   "/forums/discussions/30/reply",
			bearer: bearer,
			body:   apimodel.ReplyRequest{Message: "Thanks"},
		})
		requireError(t, w, http.StatusBadRequest, "unsuccessful")
	})
}

func TestReplyHandler_EmptyDiscussion(t *testing.T) {
	f := setupTestFixture(t)
	f.lms.respond("mod_forum_get_discussion_posts", `{"posts":[]}`)
	s := f.server(t)

	w := do(t, s, request{
		method: http.MethodPost,
		path:   "/forums/discussions/30/reply",
		bearer: f.accessToken(t),
		body:   apimodel.ReplyRequest{Message: "Anyone?"},
	})
	requireError(t, w, http.StatusNotFound, "not_found")
}
