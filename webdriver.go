// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
)

type WebDriver interface {
	//Start webdriver service
	Start() error
	//Stop webdriver service
	Stop() error
	//Query the server's status.
	Status() (*Status, error)
	//Create a new session.
	NewSession(capabilities Capabilities) (*Session, error)

	do(body interface{}, command string, p cmdParams) ([]byte, error)
}

//typing saver
type params map[string]interface{}

//Capabilities is a map that stores capabilities of a session.
type Capabilities map[string]interface{}

//A session. Holds the opaque identifier assigned by the server; the
//server-side state it names is destroyed by Delete, after which any
//operation through it fails remotely with "invalid session id".
type Session struct {
	Id           string
	Capabilities Capabilities
	wd           WebDriver
}

//A rectangle, as reported for windows and elements. Element rects may
//carry fractional pixel values.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

//Session timeouts, all in milliseconds.
type Timeouts struct {
	Script   int `json:"script"`
	PageLoad int `json:"pageLoad"`
	Implicit int `json:"implicit"`
}

type FindElementStrategy string

//Location strategies defined by the W3C specification. The server
//performs the actual match.
const (
	CSS_Selector    = FindElementStrategy("css selector")
	LinkText        = FindElementStrategy("link text")
	PartialLinkText = FindElementStrategy("partial link text")
	TagName         = FindElementStrategy("tag name")
	XPath           = FindElementStrategy("xpath")
)

func (s FindElementStrategy) valid() bool {
	switch s {
	case CSS_Selector, LinkText, PartialLinkText, TagName, XPath:
		return true
	}
	return false
}

var errBadStrategy = errors.New("invalid strategy, must be css selector|link text|partial link text|tag name|xpath")

type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Path     string `json:"path,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HttpOnly bool   `json:"httpOnly,omitempty"`
	Expiry   int64  `json:"expiry,omitempty"`
	SameSite string `json:"sameSite,omitempty"`
}

type PrintPage struct {
	//page dimensions in centimeters
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type PrintMargin struct {
	//margins in centimeters
	Top    float64 `json:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Right  float64 `json:"right,omitempty"`
}

type PrintOptions struct {
	//"portrait" or "landscape"
	Orientation string       `json:"orientation,omitempty"`
	Scale       float64      `json:"scale,omitempty"`
	Background  bool         `json:"background,omitempty"`
	Page        *PrintPage   `json:"page,omitempty"`
	Margin      *PrintMargin `json:"margin,omitempty"`
	ShrinkToFit *bool        `json:"shrinkToFit,omitempty"`
	PageRanges  []string     `json:"pageRanges,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMAND LIST
// Command descriptions are from:
// https://www.w3.org/TR/webdriver/
////////////////////////////////////////////////////////////////////////////////

//Retrieve the capabilities negotiated when the session was created.
func (s *Session) GetCapabilities() Capabilities {
	return s.Capabilities
}

//Delete the session. The local object survives; further operations
//through it fail remotely with "invalid session id".
func (s *Session) Delete() error {
	_, err := s.wd.do(nil, cmdDeleteSession, sessionParams(s))
	return err
}

//Retrieve the session's current timeouts.
func (s *Session) GetTimeouts() (Timeouts, error) {
	data, err := s.wd.do(nil, cmdGetTimeouts, sessionParams(s))
	if err != nil {
		return Timeouts{}, err
	}
	var timeouts Timeouts
	err = json.Unmarshal(data, &timeouts)
	return timeouts, err
}

//Configure the session's timeouts.
func (s *Session) SetTimeouts(timeouts Timeouts) error {
	_, err := s.wd.do(timeouts, cmdSetTimeouts, sessionParams(s))
	return err
}

//Navigate to a new URL.
func (s *Session) Url(url string) error {
	p := params{"url": url}
	_, err := s.wd.do(p, cmdNavigateTo, sessionParams(s))
	return err
}

//Retrieve the URL of the current page.
func (s *Session) GetUrl() (string, error) {
	data, err := s.wd.do(nil, cmdGetCurrentURL, sessionParams(s))
	if err != nil {
		return "", err
	}
	var url string
	err = json.Unmarshal(data, &url)
	return url, err
}

//Navigate backwards in the browser history, if possible.
func (s *Session) Back() error {
	_, err := s.wd.do(nil, cmdBack, sessionParams(s))
	return err
}

//Navigate forwards in the browser history, if possible.
func (s *Session) Forward() error {
	_, err := s.wd.do(nil, cmdForward, sessionParams(s))
	return err
}

//Refresh the current page.
func (s *Session) Refresh() error {
	_, err := s.wd.do(nil, cmdRefresh, sessionParams(s))
	return err
}

//Get the current page title.
func (s *Session) Title() (string, error) {
	data, err := s.wd.do(nil, cmdGetTitle, sessionParams(s))
	if err != nil {
		return "", err
	}
	var title string
	err = json.Unmarshal(data, &title)
	return title, err
}

//Get the current page source.
func (s *Session) Source() (string, error) {
	data, err := s.wd.do(nil, cmdGetPageSource, sessionParams(s))
	if err != nil {
		return "", err
	}
	var source string
	err = json.Unmarshal(data, &source)
	return source, err
}

//Retrieve the current window handle.
func (s *Session) WindowHandle() (string, error) {
	data, err := s.wd.do(nil, cmdGetWindowHandle, sessionParams(s))
	if err != nil {
		return "", err
	}
	var handle string
	err = json.Unmarshal(data, &handle)
	return handle, err
}

//Retrieve the list of all window handles available to the session.
func (s *Session) WindowHandles() ([]string, error) {
	data, err := s.wd.do(nil, cmdGetWindowHandles, sessionParams(s))
	if err != nil {
		return nil, err
	}
	var handles []string
	err = json.Unmarshal(data, &handles)
	return handles, err
}

//Open a new top-level browsing context. windowType is "tab" or "window";
//returns the handle and the type the server actually created.
func (s *Session) NewWindow(windowType string) (handle string, createdType string, err error) {
	p := params{"type": windowType}
	data, err := s.wd.do(p, cmdNewWindow, sessionParams(s))
	if err != nil {
		return "", "", err
	}
	var value struct {
		Handle string `json:"handle"`
		Type   string `json:"type"`
	}
	err = json.Unmarshal(data, &value)
	return value.Handle, value.Type, err
}

//Change focus to another window, specified by its handle.
func (s *Session) FocusOnWindow(handle string) error {
	p := params{"handle": handle}
	_, err := s.wd.do(p, cmdSwitchToWindow, sessionParams(s))
	return err
}

//Close the current window. Returns the handles still open.
func (s *Session) CloseCurrentWindow() ([]string, error) {
	data, err := s.wd.do(nil, cmdCloseWindow, sessionParams(s))
	if err != nil {
		return nil, err
	}
	var handles []string
	err = json.Unmarshal(data, &handles)
	return handles, err
}

//Get the size and position of the current window.
func (s *Session) WindowRect() (Rect, error) {
	data, err := s.wd.do(nil, cmdGetWindowRect, sessionParams(s))
	if err != nil {
		return Rect{}, err
	}
	var rect Rect
	err = json.Unmarshal(data, &rect)
	return rect, err
}

//Set the size and position of the current window.
func (s *Session) SetWindowRect(rect Rect) error {
	_, err := s.wd.do(rect, cmdSetWindowRect, sessionParams(s))
	return err
}

//Maximize the current window.
func (s *Session) Maximize() error {
	_, err := s.wd.do(nil, cmdMaximizeWindow, sessionParams(s))
	return err
}

//Minimize the current window.
func (s *Session) Minimize() error {
	_, err := s.wd.do(nil, cmdMinimizeWindow, sessionParams(s))
	return err
}

//Make the current window fullscreen.
func (s *Session) Fullscreen() error {
	_, err := s.wd.do(nil, cmdFullscreenWindow, sessionParams(s))
	return err
}

//Change focus to another frame on the page. The frame may be selected
//by index, by a WebElement reference, or nil to return to the top-level
//browsing context.
func (s *Session) FocusOnFrame(frame interface{}) error {
	if frame != nil {
		switch frame.(type) {
		case int:
		case WebElement:
		case *WebElement:
		default:
			return errors.New("invalid frame, must be int|nil|WebElement")
		}
	}
	p := params{"id": encodeArg(frame)}
	_, err := s.wd.do(p, cmdSwitchToFrame, sessionParams(s))
	return err
}

//Change focus back to the parent frame.
func (s *Session) FocusParentFrame() error {
	_, err := s.wd.do(nil, cmdSwitchToParentFrame, sessionParams(s))
	return err
}

//Build a local element proxy from a known identifier.
func (s *Session) WebElementFromId(id string) WebElement {
	return WebElement{s, id}
}

//Search for an element on the page, starting from the document root.
//Fails remotely with "no such element" when nothing matches.
func (s *Session) FindElement(using FindElementStrategy, value string) (WebElement, error) {
	if !using.valid() {
		return WebElement{}, errBadStrategy
	}
	p := params{"using": using, "value": value}
	data, err := s.wd.do(p, cmdFindElement, sessionParams(s))
	if err != nil {
		return WebElement{}, err
	}
	return s.decodeElement(data)
}

//Search for multiple elements on the page, starting from the document
//root. An empty result is not an error.
func (s *Session) FindElements(using FindElementStrategy, value string) ([]WebElement, error) {
	if !using.valid() {
		return nil, errBadStrategy
	}
	p := params{"using": using, "value": value}
	data, err := s.wd.do(p, cmdFindElements, sessionParams(s))
	if err != nil {
		return nil, err
	}
	return s.decodeElements(data)
}

//Get the element on the page that currently has focus.
func (s *Session) GetActiveElement() (WebElement, error) {
	data, err := s.wd.do(nil, cmdGetActiveElement, sessionParams(s))
	if err != nil {
		return WebElement{}, err
	}
	return s.decodeElement(data)
}

//Inject a snippet of JavaScript into the page for execution in the
//context of the currently selected frame. Arguments may be any
//JSON-serializable value, slice, or WebElement/ShadowRoot proxy;
//proxies are replaced by wire references in both directions.
func (s *Session) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	return s.execute(cmdExecuteScript, script, args)
}

//Like ExecuteScript but the script is asynchronous and must signal
//completion by invoking the callback provided as its final argument.
func (s *Session) ExecuteScriptAsync(script string, args []interface{}) (interface{}, error) {
	return s.execute(cmdExecuteAsyncScript, script, args)
}

func (s *Session) execute(command, script string, args []interface{}) (interface{}, error) {
	p := params{"script": script, "args": encodeArgs(args)}
	data, err := s.wd.do(p, command, sessionParams(s))
	if err != nil {
		return nil, err
	}
	var value interface{}
	if err = json.Unmarshal(data, &value); err != nil {
		return nil, &MalformedResponseError{Body: data, Err: err}
	}
	return s.decodeValue(value), nil
}

//Retrieve all cookies visible to the current page.
func (s *Session) GetCookies() ([]Cookie, error) {
	data, err := s.wd.do(nil, cmdGetAllCookies, sessionParams(s))
	if err != nil {
		return nil, err
	}
	var cookies []Cookie
	err = json.Unmarshal(data, &cookies)
	return cookies, err
}

//Retrieve the cookie with the given name.
func (s *Session) GetCookie(name string) (Cookie, error) {
	p := sessionParams(s)
	p.extra = map[string]string{"name": name}
	data, err := s.wd.do(nil, cmdGetNamedCookie, p)
	if err != nil {
		return Cookie{}, err
	}
	var cookie Cookie
	err = json.Unmarshal(data, &cookie)
	return cookie, err
}

//Set a cookie.
func (s *Session) SetCookie(cookie Cookie) error {
	p := params{"cookie": cookie}
	_, err := s.wd.do(p, cmdAddCookie, sessionParams(s))
	return err
}

//Delete the cookie with the given name.
func (s *Session) DeleteCookieByName(name string) error {
	p := sessionParams(s)
	p.extra = map[string]string{"name": name}
	_, err := s.wd.do(nil, cmdDeleteCookie, p)
	return err
}

//Delete all cookies visible to the current page.
func (s *Session) DeleteCookies() error {
	_, err := s.wd.do(nil, cmdDeleteAllCookies, sessionParams(s))
	return err
}

//Perform a flat stream of input actions. The stream is grouped into
//per-device sequences before transmission.
func (s *Session) PerformActions(actions ...Action) error {
	p := params{"actions": encodeSequences(Stream(actions...))}
	_, err := s.wd.do(p, cmdPerformActions, sessionParams(s))
	return err
}

//Release all keys and pointer buttons currently depressed.
func (s *Session) ReleaseActions() error {
	_, err := s.wd.do(nil, cmdReleaseActions, sessionParams(s))
	return err
}

//Dismisses the currently displayed alert dialog.
func (s *Session) DismissAlert() error {
	_, err := s.wd.do(nil, cmdDismissAlert, sessionParams(s))
	return err
}

//Accepts the currently displayed alert dialog.
func (s *Session) AcceptAlert() error {
	_, err := s.wd.do(nil, cmdAcceptAlert, sessionParams(s))
	return err
}

//Gets the text of the currently displayed dialog.
func (s *Session) GetAlertText() (string, error) {
	data, err := s.wd.do(nil, cmdGetAlertText, sessionParams(s))
	if err != nil {
		return "", err
	}
	var text string
	err = json.Unmarshal(data, &text)
	return text, err
}

//Sends keystrokes to a prompt() dialog.
func (s *Session) SetAlertText(text string) error {
	p := params{"text": text}
	_, err := s.wd.do(p, cmdSendAlertText, sessionParams(s))
	return err
}

//Take a screenshot of the current page. Returns decoded PNG data.
func (s *Session) Screenshot() ([]byte, error) {
	data, err := s.wd.do(nil, cmdTakeScreenshot, sessionParams(s))
	if err != nil {
		return nil, err
	}
	return decodeBase64Value(data)
}

//Render the current page to a PDF document.
func (s *Session) Print(options PrintOptions) ([]byte, error) {
	data, err := s.wd.do(options, cmdPrintPage, sessionParams(s))
	if err != nil {
		return nil, err
	}
	return decodeBase64Value(data)
}

//screenshot and print values arrive as base64 inside a JSON string.
func decodeBase64Value(data []byte) ([]byte, error) {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, &MalformedResponseError{Body: data, Err: err}
	}
	decoder := base64.NewDecoder(base64.StdEncoding, bytes.NewBufferString(encoded))
	return io.ReadAll(decoder)
}
