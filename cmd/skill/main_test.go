package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/sotavant/alexa-tube-skill/internal/alexa"
	"bitbucket.org/sotavant/alexa-tube-skill/internal/status"
	"bitbucket.org/sotavant/alexa-tube-skill/internal/status/mock"
	"bitbucket.org/sotavant/alexa-tube-skill/internal/tube"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, appID string) (*app, *mock.MockFetcher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := mock.NewMockFetcher(ctrl)

	tubeSkill := tube.NewSkill(f)
	skill := alexa.NewSkill(
		alexa.Config{ApplicationID: appID},
		tubeSkill,
		tubeSkill.IntentHandlers(),
	)

	return newApp(skill), f
}

func TestWebhook(t *testing.T) {
	appInstance, f := newTestApp(t, "amzn1.ask.skill.test")

	records := []status.Record{
		{Status: "Good Service"},
		{Status: "Severe Delays"},
	}
	f.EXPECT().
		Fetch(gomock.Any()).
		Return(records, nil).
		AnyTimes()

	handler := http.HandlerFunc(appInstance.webhook)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	testCases := []struct {
		name         string
		method       string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "method_get",
			method:       http.MethodGet,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_put",
			method:       http.MethodPut,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_delete",
			method:       http.MethodDelete,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_post_without_body",
			method:       http.MethodPost,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "",
		},
		{
			name:         "application_id_mismatch",
			method:       http.MethodPost,
			body:         `{"version":"1.0","session":{"new":true,"sessionId":"s1","application":{"applicationId":"amzn1.ask.skill.other"}},"request":{"type":"LaunchRequest","requestId":"r1"}}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "",
		},
		{
			name:         "launch_new_session",
			method:       http.MethodPost,
			body:         `{"version":"1.0","session":{"new":true,"sessionId":"s1","application":{"applicationId":"amzn1.ask.skill.test"}},"request":{"type":"LaunchRequest","requestId":"r1"}}`,
			expectedCode: http.StatusOK,
			expectedBody: `Welcome to Tube Status.*"shouldEndSession":false`,
		},
		{
			name:         "unknown_intent",
			method:       http.MethodPost,
			body:         `{"version":"1.0","session":{"new":false,"sessionId":"s1","application":{"applicationId":"amzn1.ask.skill.test"}},"request":{"type":"IntentRequest","requestId":"r2","intent":{"name":"MysteryIntent"}}}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "",
		},
		{
			name:         "line_status_intent",
			method:       http.MethodPost,
			body:         `{"version":"1.0","session":{"new":false,"sessionId":"s1","application":{"applicationId":"amzn1.ask.skill.test"}},"request":{"type":"IntentRequest","requestId":"r3","intent":{"name":"TubeStatusIntent","slots":{"Line":{"name":"Line","value":"Central"}}}}}`,
			expectedCode: http.StatusOK,
			expectedBody: `The Central line is reporting Severe Delays.`,
		},
		{
			name:         "session_ended",
			method:       http.MethodPost,
			body:         `{"version":"1.0","session":{"new":false,"sessionId":"s1","application":{"applicationId":"amzn1.ask.skill.test"}},"request":{"type":"SessionEndedRequest","requestId":"r4","reason":"USER_INITIATED"}}`,
			expectedCode: http.StatusOK,
			expectedBody: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := resty.New().R()
			r.Method = tc.method
			r.URL = srv.URL

			if len(tc.body) > 0 {
				r.SetHeader("Content-Type", "application/json")
				r.SetBody(tc.body)
			}

			resp, err := r.Send()
			assert.NoError(t, err, "error making request")

			assert.Equal(t, tc.expectedCode, resp.StatusCode())
			if tc.expectedBody != "" {
				assert.Regexp(t, tc.expectedBody, string(resp.Body()))
			}
		})
	}
}

func TestGzipCompression(t *testing.T) {
	appInstance, _ := newTestApp(t, "")

	handler := gzipMiddleware(appInstance.webhook)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	requestBody := `{
		"version": "1.0",
		"session": {
			"new": false,
			"sessionId": "s1",
			"application": {"applicationId": ""}
		},
		"request": {
			"type": "IntentRequest",
			"requestId": "r1",
			"intent": {"name": "AMAZON.StopIntent"}
		}
	}`

	successBody := `{
		"version": "1.0",
		"response": {
			"outputSpeech": {
				"type": "PlainText",
				"text": "Goodbye."
			},
			"shouldEndSession": true
		}
	}`

	t.Run("sends_gzip", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		zb := gzip.NewWriter(buf)
		_, err := zb.Write([]byte(requestBody))
		require.NoError(t, err)
		err = zb.Close()
		require.NoError(t, err)

		r := httptest.NewRequest("POST", srv.URL, buf)
		r.RequestURI = ""
		r.Header.Set("Content-Encoding", "gzip")
		r.Header.Set("Accept-Encoding", "0")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		defer func(Body io.ReadCloser) {
			err := Body.Close()
			require.NoError(t, err)
		}(resp.Body)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, successBody, string(b))
	})

	t.Run("accept_gzip", func(t *testing.T) {
		buf := bytes.NewBufferString(requestBody)
		r := httptest.NewRequest("POST", srv.URL, buf)
		r.RequestURI = ""
		r.Header.Set("Accept-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		defer resp.Body.Close()

		zr, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)

		b, err := io.ReadAll(zr)
		require.NoError(t, err)

		require.JSONEq(t, successBody, string(b))
	})
}
