package moodle

import (
	"context"
	"strconv"

	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/users"
	"github.com/rs/zerolog/log"
)

const (
	fnGetSiteInfo       = "core_webservice_get_site_info"
	fnGetUsers          = "core_user_get_users"
	fnGetUsersByField   = "core_user_get_users_by_field"
	fnGetUsersCourses   = "core_enrol_get_users_courses"
	fnGetCourseContents = "core_course_get_contents"
)

var _ users.Directory = (*Client)(nil)

func (c *Client) GetSiteInfo(ctx context.Context) (*SiteInfo, error) {
	var info SiteInfo
	if err := c.callInto(ctx, fnGetSiteInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetUserByEmail looks a user up by email. A lookup that fails for any
// reason reports the user as absent.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, bool) {
	var result struct {
		Users []User `json:"users"`
	}
	err := c.callInto(ctx, fnGetUsers, Params{
		"criteria": []map[string]string{{"key": "email", "value": email}},
	}, &result)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("function", fnGetUsers).Msg("user lookup by email failed, treating as absent")
		return nil, false
	}
	if len(result.Users) == 0 {
		return nil, false
	}
	return &result.Users[0], true
}

// GetUserByID looks a user up by id with the same failure policy as
// GetUserByEmail.
func (c *Client) GetUserByID(ctx context.Context, id int64) (*User, bool) {
	var result []User
	err := c.callInto(ctx, fnGetUsersByField, Params{
		"field":  "id",
		"values": []string{strconv.FormatInt(id, 10)},
	}, &result)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("function", fnGetUsersByField).Int64("user_id", id).Msg("user lookup by id failed, treating as absent")
		return nil, false
	}
	if len(result) == 0 {
		return nil, false
	}
	return &result[0], true
}

func (c *Client) FindUserByEmail(ctx context.Context, email string) (*users.Identity, bool) {
	u, ok := c.GetUserByEmail(ctx, email)
	if !ok {
		return nil, false
	}
	return u.identity(), true
}

func (c *Client) FindUserByID(ctx context.Context, id int64) (*users.Identity, bool) {
	u, ok := c.GetUserByID(ctx, id)
	if !ok {
		return nil, false
	}
	return u.identity(), true
}

// CurrentUserID is the LMS user owning the service token.
func (c *Client) CurrentUserID(ctx context.Context) (int64, error) {
	info, err := c.GetSiteInfo(ctx)
	if err != nil {
		return 0, err
	}
	if info.UserID == 0 {
		return 0, errors.Wrapf(errors.ErrNotFound, "site info carries no user")
	}
	return info.UserID, nil
}

func (u *User) identity() *users.Identity {
	return &users.Identity{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
