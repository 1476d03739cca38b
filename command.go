// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"net/url"
	"strings"
)

//Command names, one per W3C WebDriver endpoint.
const (
	cmdNewSession                 = "new session"
	cmdDeleteSession              = "delete session"
	cmdStatus                     = "status"
	cmdGetTimeouts                = "get timeouts"
	cmdSetTimeouts                = "set timeouts"
	cmdNavigateTo                 = "navigate to"
	cmdGetCurrentURL              = "get current url"
	cmdBack                       = "back"
	cmdForward                    = "forward"
	cmdRefresh                    = "refresh"
	cmdGetTitle                   = "get title"
	cmdGetWindowHandle            = "get window handle"
	cmdCloseWindow                = "close window"
	cmdSwitchToWindow             = "switch to window"
	cmdGetWindowHandles           = "get window handles"
	cmdNewWindow                  = "new window"
	cmdSwitchToFrame              = "switch to frame"
	cmdSwitchToParentFrame        = "switch to parent frame"
	cmdGetWindowRect              = "get window rect"
	cmdSetWindowRect              = "set window rect"
	cmdMaximizeWindow             = "maximize window"
	cmdMinimizeWindow             = "minimize window"
	cmdFullscreenWindow           = "fullscreen window"
	cmdGetActiveElement           = "get active element"
	cmdGetElementShadowRoot       = "get element shadow root"
	cmdFindElement                = "find element"
	cmdFindElements               = "find elements"
	cmdFindElementFromElement     = "find element from element"
	cmdFindElementsFromElement    = "find elements from element"
	cmdFindElementFromShadowRoot  = "find element from shadow root"
	cmdFindElementsFromShadowRoot = "find elements from shadow root"
	cmdIsElementSelected          = "is element selected"
	cmdIsElementEnabled           = "is element enabled"
	cmdIsElementDisplayed         = "is element displayed"
	cmdGetElementAttribute        = "get element attribute"
	cmdGetElementProperty         = "get element property"
	cmdGetElementCSSValue         = "get element css value"
	cmdGetElementText             = "get element text"
	cmdGetElementTagName          = "get element tag name"
	cmdGetElementRect             = "get element rect"
	cmdGetComputedRole            = "get computed role"
	cmdGetComputedLabel           = "get computed label"
	cmdElementClick               = "element click"
	cmdElementClear               = "element clear"
	cmdElementSendKeys            = "element send keys"
	cmdGetPageSource              = "get page source"
	cmdExecuteScript              = "execute script"
	cmdExecuteAsyncScript         = "execute async script"
	cmdGetAllCookies              = "get all cookies"
	cmdGetNamedCookie             = "get named cookie"
	cmdAddCookie                  = "add cookie"
	cmdDeleteCookie               = "delete cookie"
	cmdDeleteAllCookies           = "delete all cookies"
	cmdPerformActions             = "perform actions"
	cmdReleaseActions             = "release actions"
	cmdDismissAlert               = "dismiss alert"
	cmdAcceptAlert                = "accept alert"
	cmdGetAlertText               = "get alert text"
	cmdSendAlertText              = "send alert text"
	cmdTakeScreenshot             = "take screenshot"
	cmdTakeElementScreenshot      = "take element screenshot"
	cmdPrintPage                  = "print page"
)

type commandSpec struct {
	method   string
	template string
}

//Endpoint list from the W3C WebDriver specification. Read-only after
//initialization, safe for concurrent use.
var commandTable = map[string]commandSpec{
	cmdNewSession:                 {"POST", "/session"},
	cmdDeleteSession:              {"DELETE", "/session/{session id}"},
	cmdStatus:                     {"GET", "/status"},
	cmdGetTimeouts:                {"GET", "/session/{session id}/timeouts"},
	cmdSetTimeouts:                {"POST", "/session/{session id}/timeouts"},
	cmdNavigateTo:                 {"POST", "/session/{session id}/url"},
	cmdGetCurrentURL:              {"GET", "/session/{session id}/url"},
	cmdBack:                       {"POST", "/session/{session id}/back"},
	cmdForward:                    {"POST", "/session/{session id}/forward"},
	cmdRefresh:                    {"POST", "/session/{session id}/refresh"},
	cmdGetTitle:                   {"GET", "/session/{session id}/title"},
	cmdGetWindowHandle:            {"GET", "/session/{session id}/window"},
	cmdCloseWindow:                {"DELETE", "/session/{session id}/window"},
	cmdSwitchToWindow:             {"POST", "/session/{session id}/window"},
	cmdGetWindowHandles:           {"GET", "/session/{session id}/window/handles"},
	cmdNewWindow:                  {"POST", "/session/{session id}/window/new"},
	cmdSwitchToFrame:              {"POST", "/session/{session id}/frame"},
	cmdSwitchToParentFrame:        {"POST", "/session/{session id}/frame/parent"},
	cmdGetWindowRect:              {"GET", "/session/{session id}/window/rect"},
	cmdSetWindowRect:              {"POST", "/session/{session id}/window/rect"},
	cmdMaximizeWindow:             {"POST", "/session/{session id}/window/maximize"},
	cmdMinimizeWindow:             {"POST", "/session/{session id}/window/minimize"},
	cmdFullscreenWindow:           {"POST", "/session/{session id}/window/fullscreen"},
	cmdGetActiveElement:           {"GET", "/session/{session id}/element/active"},
	cmdGetElementShadowRoot:       {"GET", "/session/{session id}/element/{element id}/shadow"},
	cmdFindElement:                {"POST", "/session/{session id}/element"},
	cmdFindElements:               {"POST", "/session/{session id}/elements"},
	cmdFindElementFromElement:     {"POST", "/session/{session id}/element/{element id}/element"},
	cmdFindElementsFromElement:    {"POST", "/session/{session id}/element/{element id}/elements"},
	cmdFindElementFromShadowRoot:  {"POST", "/session/{session id}/shadow/{shadow id}/element"},
	cmdFindElementsFromShadowRoot: {"POST", "/session/{session id}/shadow/{shadow id}/elements"},
	cmdIsElementSelected:          {"GET", "/session/{session id}/element/{element id}/selected"},
	cmdIsElementEnabled:           {"GET", "/session/{session id}/element/{element id}/enabled"},
	cmdIsElementDisplayed:         {"GET", "/session/{session id}/element/{element id}/displayed"},
	cmdGetElementAttribute:        {"GET", "/session/{session id}/element/{element id}/attribute/{name}"},
	cmdGetElementProperty:         {"GET", "/session/{session id}/element/{element id}/property/{name}"},
	cmdGetElementCSSValue:         {"GET", "/session/{session id}/element/{element id}/css/{property name}"},
	cmdGetElementText:             {"GET", "/session/{session id}/element/{element id}/text"},
	cmdGetElementTagName:          {"GET", "/session/{session id}/element/{element id}/name"},
	cmdGetElementRect:             {"GET", "/session/{session id}/element/{element id}/rect"},
	cmdGetComputedRole:            {"GET", "/session/{session id}/element/{element id}/computedrole"},
	cmdGetComputedLabel:           {"GET", "/session/{session id}/element/{element id}/computedlabel"},
	cmdElementClick:               {"POST", "/session/{session id}/element/{element id}/click"},
	cmdElementClear:               {"POST", "/session/{session id}/element/{element id}/clear"},
	cmdElementSendKeys:            {"POST", "/session/{session id}/element/{element id}/value"},
	cmdGetPageSource:              {"GET", "/session/{session id}/source"},
	cmdExecuteScript:              {"POST", "/session/{session id}/execute/sync"},
	cmdExecuteAsyncScript:         {"POST", "/session/{session id}/execute/async"},
	cmdGetAllCookies:              {"GET", "/session/{session id}/cookie"},
	cmdGetNamedCookie:             {"GET", "/session/{session id}/cookie/{name}"},
	cmdAddCookie:                  {"POST", "/session/{session id}/cookie"},
	cmdDeleteCookie:               {"DELETE", "/session/{session id}/cookie/{name}"},
	cmdDeleteAllCookies:           {"DELETE", "/session/{session id}/cookie"},
	cmdPerformActions:             {"POST", "/session/{session id}/actions"},
	cmdReleaseActions:             {"DELETE", "/session/{session id}/actions"},
	cmdDismissAlert:               {"POST", "/session/{session id}/alert/dismiss"},
	cmdAcceptAlert:                {"POST", "/session/{session id}/alert/accept"},
	cmdGetAlertText:               {"GET", "/session/{session id}/alert/text"},
	cmdSendAlertText:              {"POST", "/session/{session id}/alert/text"},
	cmdTakeScreenshot:             {"GET", "/session/{session id}/screenshot"},
	cmdTakeElementScreenshot:      {"GET", "/session/{session id}/element/{element id}/screenshot"},
	cmdPrintPage:                  {"POST", "/session/{session id}/print"},
}

//identifiers substituted into a command's URL template.
type cmdParams struct {
	session string
	element string
	shadow  string
	extra   map[string]string
}

func sessionParams(s *Session) cmdParams {
	return cmdParams{session: s.Id}
}

func elementParams(e WebElement) cmdParams {
	return cmdParams{session: e.s.Id, element: e.id}
}

func shadowParams(r ShadowRoot) cmdParams {
	return cmdParams{session: r.s.Id, shadow: r.id}
}

//buildCommand resolves a command name and a set of identifiers into a
//concrete method and URL path. Placeholders left unresolved after
//substitution are a local error, raised before any network I/O.
func buildCommand(name string, p cmdParams) (method string, urlPath string, err error) {
	spec, ok := commandTable[name]
	if !ok {
		return "", "", &UnknownCommandError{Command: name}
	}
	u := spec.template
	if p.session != "" {
		u = strings.ReplaceAll(u, "{session id}", p.session)
	}
	if p.element != "" {
		u = strings.ReplaceAll(u, "{element id}", p.element)
	}
	if p.shadow != "" {
		u = strings.ReplaceAll(u, "{shadow id}", p.shadow)
	}
	for k, v := range p.extra {
		u = strings.ReplaceAll(u, "{"+k+"}", url.PathEscape(v))
	}
	if missing := unresolvedTokens(u); len(missing) > 0 {
		return "", "", &UnknownCommandError{Command: name, Missing: missing}
	}
	return spec.method, u, nil
}

func unresolvedTokens(u string) []string {
	var tokens []string
	for {
		i := strings.IndexByte(u, '{')
		if i < 0 {
			return tokens
		}
		j := strings.IndexByte(u[i:], '}')
		if j < 0 {
			return append(tokens, u[i:])
		}
		tokens = append(tokens, u[i:i+j+1])
		u = u[i+j+1:]
	}
}
