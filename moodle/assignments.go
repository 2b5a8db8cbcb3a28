package moodle

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

const (
	fnGetAssignments      = "mod_assign_get_assignments"
	fnGetSubmissionStatus = "mod_assign_get_submission_status"
	fnSaveSubmission      = "mod_assign_save_submission"

	onlineTextFormatHTML = 1
)

// GetAssignments lists the assignments of one course.
func (c *Client) GetAssignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	var result struct {
		Courses []struct {
			ID          int64        `json:"id"`
			Assignments []Assignment `json:"assignments"`
		} `json:"courses"`
	}
	if err := c.callInto(ctx, fnGetAssignments, Params{"courseids": []int64{courseID}}, &result); err != nil {
		return nil, err
	}
	if len(result.Courses) == 0 {
		return []Assignment{}, nil
	}
	assignments := result.Courses[0].Assignments
	if assignments == nil {
		assignments = []Assignment{}
	}
	return assignments, nil
}

// GetAssignmentByID always reports the assignment as absent: the LMS has no
// direct lookup and a search across every course is not implemented.
func (c *Client) GetAssignmentByID(_ context.Context, _ int64) (*Assignment, bool) {
	// TODO: resolve through mod_assign_get_assignments over the caller's enrolled courses.
	return nil, false
}

type submissionStatusResult struct {
	LastAttempt *struct {
		Submission *struct {
			Status string `json:"status"`
		} `json:"submission"`
	} `json:"lastattempt"`
	Feedback *struct {
		Grade           json.RawMessage `json:"grade"`
		GradeForDisplay *string         `json:"gradefordisplay"`
		FeedbackPlugins []struct {
			EditorFields []struct {
				Text *string `json:"text"`
			} `json:"editorfields"`
		} `json:"feedbackplugins"`
	} `json:"feedback"`
}

// GetSubmissionStatus reports the user's latest attempt. When the LMS
// cannot answer the attempt is reported as new and ungraded.
func (c *Client) GetSubmissionStatus(ctx context.Context, assignmentID, userID int64) SubmissionStatus {
	var result submissionStatusResult
	err := c.callInto(ctx, fnGetSubmissionStatus, Params{
		"assignid": assignmentID,
		"userid":   userID,
	}, &result)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("function", fnGetSubmissionStatus).Int64("assignment_id", assignmentID).Msg("submission status unavailable, reporting default")
		return DefaultSubmissionStatus()
	}

	status := DefaultSubmissionStatus()
	if result.LastAttempt != nil && result.LastAttempt.Submission != nil && result.LastAttempt.Submission.Status != "" {
		status.Status = result.LastAttempt.Submission.Status
	}
	if fb := result.Feedback; fb != nil {
		status.Graded = len(fb.Grade) > 0 && string(fb.Grade) != "null"
		status.Grade = fb.GradeForDisplay
		if len(fb.FeedbackPlugins) > 0 && len(fb.FeedbackPlugins[0].EditorFields) > 0 {
			status.Feedback = fb.FeedbackPlugins[0].EditorFields[0].Text
		}
	}
	return status
}

// SubmitAssignment saves an online text submission. It reports false when
// the LMS rejects it.
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID int64, text string) bool {
	_, err := c.Call(ctx, fnSaveSubmission, Params{
		"assignmentid": assignmentID,
		"plugindata": map[string]any{
			"onlinetext_editor": map[string]any{
				"text":   text,
				"format": onlineTextFormatHTML,
				"itemid": 0,
			},
		},
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("function", fnSaveSubmission).Int64("assignment_id", assignmentID).Msg("submission rejected")
		return false
	}
	return true
}
