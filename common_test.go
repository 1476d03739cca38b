// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coreFor(t *testing.T, ts *httptest.Server) WebDriverCore {
	t.Helper()
	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	core := WebDriverCore{}
	core.SetUrl(u)
	return core
}

//A duplicated "<code>: " prefix in the server's message is stripped
//exactly once; the code stays inspectable on the error.
func TestRemoteErrorPrefixStripping(t *testing.T) {
	t.Parallel()
	err := parseRemoteError(404, []byte(
		`{"value":{"error":"no such element","message":"no such element: no such element: Unable to locate element"}}`))
	var remoteErr *RemoteCommandError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "no such element", remoteErr.Code)
	assert.Equal(t, "no such element: Unable to locate element", remoteErr.Message)
	assert.Equal(t, "No such element: no such element: Unable to locate element", remoteErr.Error())
}

//The nested "value" location wins; the top level is a fallback for
//older servers.
func TestRemoteErrorLocations(t *testing.T) {
	t.Parallel()
	err := parseRemoteError(400, []byte(`{"value":{"error":"invalid argument","message":"bad url"}}`))
	var remoteErr *RemoteCommandError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrInvalidArgument, remoteErr.Code)
	assert.Equal(t, "bad url", remoteErr.Message)

	err = parseRemoteError(500, []byte(`{"error":"unknown error","message":"boom"}`))
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrUnknownError, remoteErr.Code)
	assert.Equal(t, "boom", remoteErr.Message)
}

func TestRemoteErrorBareBody(t *testing.T) {
	t.Parallel()
	err := parseRemoteError(500, []byte("server exploded\n"))
	var remoteErr *RemoteCommandError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrUnknownError, remoteErr.Code)
	assert.Equal(t, "server exploded", remoteErr.Message)
	assert.Equal(t, 500, remoteErr.HTTPStatus)
}

func TestDoClassifiesHTTPErrors(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrNoSuchWindow, "no such window: target window already closed")
	}))
	t.Cleanup(ts.Close)

	core := coreFor(t, ts)
	_, err := core.do(nil, cmdGetTitle, cmdParams{session: "s-1"})
	var remoteErr *RemoteCommandError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrNoSuchWindow, remoteErr.Code)
	assert.Equal(t, "target window already closed", remoteErr.Message)
}

func TestDoTimeout(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		ts.Close()
	})

	core := coreFor(t, ts)
	core.Timeout = 50 * time.Millisecond
	_, err := core.do(nil, cmdStatus, cmdParams{})
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
}

func TestDoMalformedJSON(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte("{not json"))
	}))
	t.Cleanup(ts.Close)

	core := coreFor(t, ts)
	_, err := core.do(nil, cmdStatus, cmdParams{})
	var malformedErr *MalformedResponseError
	require.ErrorAs(t, err, &malformedErr)
}

//Non-JSON success bodies pass through raw, with no error.
func TestDoNonJSONPassthrough(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG"))
	}))
	t.Cleanup(ts.Close)

	core := coreFor(t, ts)
	data, err := core.do(nil, cmdStatus, cmdParams{})
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data)
}

//POST commands always carry a body, "{}" at minimum; GET and DELETE
//never do, and every request announces JSON in both directions.
func TestDoHeadersAndBodies(t *testing.T) {
	t.Parallel()
	type seen struct {
		contentType string
		accept      string
		body        string
	}
	var last seen
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		last = seen{
			contentType: r.Header.Get("Content-Type"),
			accept:      r.Header.Get("Accept"),
			body:        string(buf[:n]),
		}
		writeValue(w, nil)
	}))
	t.Cleanup(ts.Close)

	core := coreFor(t, ts)
	_, err := core.do(nil, cmdBack, cmdParams{session: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", last.contentType)
	assert.Equal(t, "application/json; charset=utf-8", last.accept)
	assert.Equal(t, "{}", last.body)

	_, err = core.do(nil, cmdGetTitle, cmdParams{session: "s-1"})
	require.NoError(t, err)
	assert.Empty(t, last.contentType)
	assert.Empty(t, last.body)
}

func TestDoLocalErrorBeforeNetwork(t *testing.T) {
	t.Parallel()
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeValue(w, nil)
	}))
	t.Cleanup(ts.Close)

	core := coreFor(t, ts)
	_, err := core.do(nil, "no such command", cmdParams{})
	var unknownErr *UnknownCommandError
	require.ErrorAs(t, err, &unknownErr)
	_, err = core.do(nil, cmdGetTitle, cmdParams{})
	require.ErrorAs(t, err, &unknownErr)
	assert.Zero(t, requests)
}
