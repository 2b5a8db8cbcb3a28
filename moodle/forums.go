package moodle

import (
	"context"

	"github.com/rs/zerolog/log"
)

const (
	fnGetForums           = "mod_forum_get_forums_by_courses"
	fnGetForumDiscussions = "mod_forum_get_forum_discussions"
	fnGetDiscussionPosts  = "mod_forum_get_discussion_posts"
	fnAddDiscussionPost   = "mod_forum_add_discussion_post"

	replySubject = "Re:"
)

func (c *Client) GetForums(ctx context.Context, courseID int64) ([]Forum, error) {
	var forums []Forum
	if err := c.callInto(ctx, fnGetForums, Params{"courseids": []int64{courseID}}, &forums); err != nil {
		return nil, err
	}
	return forums, nil
}

func (c *Client) GetForumDiscussions(ctx context.Context, forumID int64) ([]Discussion, error) {
	var result struct {
		Discussions []Discussion `json:"discussions"`
	}
	if err := c.callInto(ctx, fnGetForumDiscussions, Params{"forumid": forumID}, &result); err != nil {
		return nil, err
	}
	return result.Discussions, nil
}

func (c *Client) GetDiscussionPosts(ctx context.Context, discussionID int64) ([]Post, error) {
	var result struct {
		Posts []Post `json:"posts"`
	}
	if err := c.callInto(ctx, fnGetDiscussionPosts, Params{"discussionid": discussionID}, &result); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

// AddDiscussionPost replies to a post. A rejected reply is reported as
// absent.
func (c *Client) AddDiscussionPost(ctx context.Context, postID int64, message string) (*AddedPost, bool) {
	var added AddedPost
	err := c.callInto(ctx, fnAddDiscussionPost, Params{
		"postid":  postID,
		"subject": replySubject,
		"message": message,
	}, &added)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("function", fnAddDiscussionPost).Int64("post_id", postID).Msg("reply rejected")
		return nil, false
	}
	return &added, true
}
