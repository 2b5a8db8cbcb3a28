package moodle_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/moodle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testServiceToken = "svc-token"

type lmsResponse struct {
	status int
	body   string
}

// fakeLMS answers web-service calls from canned responses keyed by
// wsfunction and records every form it receives.
type fakeLMS struct {
	server    *httptest.Server
	lock      sync.Mutex
	responses map[string]lmsResponse
	forms     []url.Values
	paths     []string
}

func newFakeLMS(t *testing.T) *fakeLMS {
	t.Helper()

	f := &fakeLMS{responses: make(map[string]lmsResponse)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeLMS) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.lock.Lock()
	f.forms = append(f.forms, r.PostForm)
	f.paths = append(f.paths, r.URL.Path)
	resp, ok := f.responses[r.PostForm.Get("wsfunction")]
	f.lock.Unlock()

	if !ok {
		resp = lmsResponse{body: `{"exception":"dml_missing_record_exception","errorcode":"invalidrecord","message":"no canned response"}`}
	}
	if resp.status == 0 {
		resp.status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeLMS) respond(function string, status int, body string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses[function] = lmsResponse{status: status, body: body}
}

func (f *fakeLMS) lastForm(t *testing.T) url.Values {
	t.Helper()
	f.lock.Lock()
	defer f.lock.Unlock()
	require.NotEmpty(t, f.forms)
	return f.forms[len(f.forms)-1]
}

func newTestClient(t *testing.T, lms *fakeLMS, options ...moodle.Option) *moodle.Client {
	t.Helper()
	return moodle.New(config.Upstream{URL: lms.server.URL + "/", Token: testServiceToken}, options...)
}

func TestClient_Call(t *testing.T) {
	lms := newFakeLMS(t)
	client := newTestClient(t, lms)
	ctx := context.Background()

	t.Run("posts the call envelope", func(t *testing.T) {
		lms.respond("core_webservice_get_site_info", http.StatusOK, `{"sitename":"Campus","userid":2}`)

		body, err := client.Call(ctx, "core_webservice_get_site_info", moodle.Params{"courseids": []int64{5}})
		require.NoError(t, err)
		require.JSONEq(t, `{"sitename":"Campus","userid":2}`, string(body))

		form := lms.lastForm(t)
		require.Equal(t, testServiceToken, form.Get("wstoken"))
		require.Equal(t, "core_webservice_get_site_info", form.Get("wsfunction"))
		require.Equal(t, "json", form.Get("moodlewsrestformat"))
		require.Equal(t, "5", form.Get("courseids[0]"))
		require.Equal(t, "/webservice/rest/server.php", lms.paths[len(lms.paths)-1])
	})

	t.Run("exception in a 200 body is an error", func(t *testing.T) {
		lms.respond("core_course_get_contents", http.StatusOK, `{"exception":"moodle_exception","message":"invalid course"}`)

		body, err := client.Call(ctx, "core_course_get_contents", moodle.Params{"courseid": 1})
		require.Nil(t, body)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid course")
		require.ErrorIs(t, err, errors.ErrUpstreamApplication)

		var upstreamErr *moodle.Error
		require.ErrorAs(t, err, &upstreamErr)
		require.Equal(t, "moodle_exception", upstreamErr.Exception)
		require.Equal(t, "core_course_get_contents", upstreamErr.Function)
	})

	t.Run("non 2xx status is a failure", func(t *testing.T) {
		lms.respond("core_enrol_get_users_courses", http.StatusServiceUnavailable, `[]`)

		_, err := client.Call(ctx, "core_enrol_get_users_courses", nil)
		require.ErrorIs(t, err, errors.ErrUpstreamUnavailable)

		var statusErr *moodle.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	})

	t.Run("non JSON body is an application error", func(t *testing.T) {
		lms.respond("mod_forum_get_forums_by_courses", http.StatusOK, `<html>maintenance</html>`)

		_, err := client.Call(ctx, "mod_forum_get_forums_by_courses", nil)
		require.ErrorIs(t, err, errors.ErrUpstreamApplication)
	})

	t.Run("lists and nulls are successes", func(t *testing.T) {
		lms.respond("mod_assign_save_submission", http.StatusOK, `[]`)
		_, err := client.Call(ctx, "mod_assign_save_submission", nil)
		require.NoError(t, err)

		lms.respond("mod_assign_save_submission", http.StatusOK, `null`)
		_, err = client.Call(ctx, "mod_assign_save_submission", nil)
		require.NoError(t, err)
	})
}

func TestClient_TransportFailure(t *testing.T) {
	lms := newFakeLMS(t)
	client := newTestClient(t, lms)
	lms.server.Close()

	_, err := client.Call(context.Background(), "core_webservice_get_site_info", nil)
	require.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)
	t.Cleanup(func() { close(release) })

	client := moodle.New(config.Upstream{URL: slow.URL}, moodle.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))

	_, err := client.Call(context.Background(), "core_webservice_get_site_info", nil)
	require.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
}

func TestClient_Metrics(t *testing.T) {
	lms := newFakeLMS(t)
	reg := prometheus.NewRegistry()
	metrics, err := moodle.NewMetrics(reg)
	require.NoError(t, err)
	client := newTestClient(t, lms, moodle.WithMetrics(metrics))

	lms.respond("core_webservice_get_site_info", http.StatusOK, `{"userid":2}`)
	lms.respond("core_course_get_contents", http.StatusOK, `{"exception":"moodle_exception","message":"nope"}`)

	_, err = client.Call(context.Background(), "core_webservice_get_site_info", nil)
	require.NoError(t, err)
	_, err = client.Call(context.Background(), "core_course_get_contents", nil)
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	outcomes := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "lms_gateway_upstream_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			outcomes[labels["function"]+"/"+labels["outcome"]] = m.GetCounter().GetValue()
		}
	}
	require.Equal(t, map[string]float64{
		"core_webservice_get_site_info/ok":           1,
		"core_course_get_contents/application_error": 1,
	}, outcomes)

	_, err = moodle.NewMetrics(reg)
	require.Error(t, err, "collectors register once per registry")
}
