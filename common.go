// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

//W3C WebDriver error codes a server may report. The list is not
//exhaustive: the server's code is passed through whatever it is.
const (
	ErrElementClickIntercepted = "element click intercepted"
	ErrElementNotInteractable  = "element not interactable"
	ErrInsecureCertificate     = "insecure certificate"
	ErrInvalidArgument         = "invalid argument"
	ErrInvalidCookieDomain     = "invalid cookie domain"
	ErrInvalidElementState     = "invalid element state"
	ErrInvalidSelector         = "invalid selector"
	ErrInvalidSessionId        = "invalid session id"
	ErrJavascriptError         = "javascript error"
	ErrMoveTargetOutOfBounds   = "move target out of bounds"
	ErrNoSuchAlert             = "no such alert"
	ErrNoSuchCookie            = "no such cookie"
	ErrNoSuchElement           = "no such element"
	ErrNoSuchFrame             = "no such frame"
	ErrNoSuchShadowRoot        = "no such shadow root"
	ErrNoSuchWindow            = "no such window"
	ErrScriptTimeout           = "script timeout"
	ErrSessionNotCreated       = "session not created"
	ErrStaleElementReference   = "stale element reference"
	ErrDetachedShadowRoot      = "detached shadow root"
	ErrTimeout                 = "timeout"
	ErrUnableToSetCookie       = "unable to set cookie"
	ErrUnableToCaptureScreen   = "unable to capture screen"
	ErrUnexpectedAlertOpen     = "unexpected alert open"
	ErrUnknownCommand          = "unknown command"
	ErrUnknownError            = "unknown error"
	ErrUnknownMethod           = "unknown method"
	ErrUnsupportedOperation    = "unsupported operation"
)

//Requests time out after DefaultTimeout unless the driver's Timeout
//field says otherwise.
const DefaultTimeout = 20 * time.Second

//UnknownCommandError is a programmer error: a command name absent from
//the command table, or one whose URL template could not be fully
//resolved with the identifiers supplied.
type UnknownCommandError struct {
	Command string
	Missing []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Missing) > 0 {
		return "command " + e.Command + ": unresolved placeholders: " + strings.Join(e.Missing, ", ")
	}
	return "unknown command: " + e.Command
}

//TimeoutError reports that no response arrived within the configured
//deadline.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: no response from %s within %s", e.URL, e.Timeout)
}

//RemoteCommandError is a failure reported by the WebDriver server. Code
//holds the protocol error code verbatim (e.g. "no such element",
//"stale element reference") so callers can branch on it.
type RemoteCommandError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *RemoteCommandError) Error() string {
	m := capitalize(e.Code)
	if e.Message != "" {
		m += ": " + e.Message
	}
	return m
}

//MalformedResponseError reports a body that could not be parsed as JSON
//when JSON was expected.
type MalformedResponseError struct {
	Body []byte
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return "unknown error"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

//shape of the error body: modern servers nest the pair under "value",
//older ones put it at the top level.
type errorValue struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StackTrace string `json:"stacktrace"`
}

func parseRemoteError(status int, body []byte) error {
	var nested struct {
		Value errorValue `json:"value"`
	}
	ev := errorValue{}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Value.Error != "" {
		ev = nested.Value
	} else {
		var top errorValue
		if err := json.Unmarshal(body, &top); err == nil && top.Error != "" {
			ev = top
		}
	}
	if ev.Error == "" {
		//workaround: some servers answer errors with a bare string body
		return &RemoteCommandError{Code: ErrUnknownError, Message: strings.TrimSpace(string(body)), HTTPStatus: status}
	}
	//servers commonly duplicate the code as a message prefix; strip it once
	ev.Message = strings.TrimPrefix(ev.Message, ev.Error+": ")
	return &RemoteCommandError{Code: ev.Error, Message: ev.Message, HTTPStatus: status}
}

//shape of a successful response.
type jsonResponse struct {
	Value json.RawMessage `json:"value"`
}

func newRequest(ctx context.Context, method, url string, data []byte) (*http.Request, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if data != nil {
		request.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	request.Header.Set("Accept", "application/json; charset=utf-8")
	return request, nil
}

//WebDriverCore holds the transport state shared by every proxy created
//from one driver: the base URL, the request timeout and the logger.
type WebDriverCore struct {
	//Per-request deadline. Zero means DefaultTimeout, negative disables
	//the deadline entirely.
	Timeout time.Duration

	url    string
	logger logrus.FieldLogger
}

func (d *WebDriverCore) SetUrl(u *url.URL) {
	d.url = u.String()
}

func (w WebDriverCore) Start() error { return nil }
func (w WebDriverCore) Stop() error  { return nil }

func (w WebDriverCore) log() logrus.FieldLogger {
	if w.logger == nil {
		return quietLogger()
	}
	return w.logger
}

func (w WebDriverCore) do(body interface{}, command string, p cmdParams) ([]byte, error) {
	method, path, err := buildCommand(command, p)
	if err != nil {
		return nil, err
	}
	return w.doInternal(body, method, w.url+path)
}

//communicate with the server.
func (w WebDriverCore) doInternal(body interface{}, method, url string) ([]byte, error) {
	var data []byte
	var err error
	if method == "POST" {
		//a POST command always carries a JSON body, at minimum "{}"
		if body == nil {
			body = params{}
		}
		data, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}
	w.log().WithFields(logrus.Fields{"method": method, "url": url}).Debug(truncate(data, 1024))

	timeout := w.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	request, err := newRequest(ctx, method, url, data)
	if err != nil {
		return nil, err
	}
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url, Timeout: timeout}
		}
		return nil, err
	}
	defer response.Body.Close()

	buf, err := io.ReadAll(response.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url, Timeout: timeout}
		}
		return nil, err
	}
	w.log().WithField("status", response.StatusCode).Debug(truncate(buf, 1024))

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseRemoteError(response.StatusCode, buf)
	}
	if !strings.Contains(response.Header.Get("Content-Type"), "json") {
		//non-JSON payloads (e.g. image data) pass through raw
		return buf, nil
	}
	jr := jsonResponse{}
	if err = json.Unmarshal(buf, &jr); err != nil {
		return nil, &MalformedResponseError{Body: buf, Err: err}
	}
	return []byte(jr.Value), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(buf []byte, n int) string {
	if len(buf) <= n {
		return string(buf)
	}
	return fmt.Sprintf("%s ...%d more bytes", buf[:n], len(buf)-n)
}

//Server readiness.
type Status struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

//Query the server's status.
func (w WebDriverCore) Status() (*Status, error) {
	data, err := w.do(nil, cmdStatus, cmdParams{})
	if err != nil {
		return nil, err
	}
	status := &Status{}
	err = json.Unmarshal(data, status)
	return status, err
}

//Create a new session. A default capability set derived from the browser
//name is merged with the caller's overrides; overrides win.
func (w WebDriverCore) newSession(browser string, capabilities Capabilities) (*Session, error) {
	alwaysMatch := Capabilities{}
	if browser != "" {
		alwaysMatch["browserName"] = browser
	}
	for k, v := range capabilities {
		alwaysMatch[k] = v
	}
	p := params{"capabilities": params{
		"alwaysMatch": alwaysMatch,
		"firstMatch":  []params{{}},
	}}
	data, err := w.do(p, cmdNewSession, cmdParams{})
	if err != nil {
		return nil, err
	}
	var value struct {
		SessionId    string       `json:"sessionId"`
		Capabilities Capabilities `json:"capabilities"`
	}
	if err = json.Unmarshal(data, &value); err != nil {
		return nil, &MalformedResponseError{Body: data, Err: err}
	}
	return &Session{Id: value.SessionId, Capabilities: value.Capabilities}, nil
}
