// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindElementStrategies(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("POST", "/element", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, params{webElementKey: "el-1"})
	})
	session := testSession(t, f)

	element, err := session.FindElement(CSS_Selector, "#id")
	require.NoError(t, err)
	assert.Equal(t, "el-1", element.id)
	body := f.lastBody(t)
	assert.Equal(t, "css selector", body["using"])
	assert.Equal(t, "#id", body["value"])

	//a bad strategy never reaches the wire
	before := len(f.recorded())
	_, err = session.FindElement(FindElementStrategy("id"), "foo")
	require.Error(t, err)
	assert.Len(t, f.recorded(), before)
}

func TestFindElementsEmptyResult(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("POST", "/elements", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, []params{})
	})
	session := testSession(t, f)
	elements, err := session.FindElements(XPath, "//nothing")
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestFindElementNotFound(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("POST", "/element", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrNoSuchElement, "no such element: Unable to locate element: #gone")
	})
	session := testSession(t, f)
	_, err := session.FindElement(CSS_Selector, "#gone")
	var remoteErr *RemoteCommandError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrNoSuchElement, remoteErr.Code)
	assert.Equal(t, "Unable to locate element: #gone", remoteErr.Message)
}

func TestElementChildFind(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("POST", "/element/parent-1/element", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, params{webElementKey: "child-1"})
	})
	f.sessionRoute("POST", "/element/parent-1/elements", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, []params{{webElementKey: "child-1"}, {webElementKey: "child-2"}})
	})
	session := testSession(t, f)
	parent := session.WebElementFromId("parent-1")

	child, err := parent.FindElement(TagName, "li")
	require.NoError(t, err)
	assert.Equal(t, "child-1", child.id)

	children, err := parent.FindElements(TagName, "li")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "child-2", children[1].id)
}

func TestElementGetters(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	el := "/element/el-1"
	f.sessionRoute("GET", el+"/text", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "some text") })
	f.sessionRoute("GET", el+"/name", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "div") })
	f.sessionRoute("GET", el+"/attribute/class", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "big red") })
	f.sessionRoute("GET", el+"/property/value", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "typed") })
	f.sessionRoute("GET", el+"/css/background-color", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "rgb(0,0,0)") })
	f.sessionRoute("GET", el+"/rect", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, Rect{X: 7.5, Y: 8, Width: 100, Height: 20})
	})
	f.sessionRoute("GET", el+"/selected", func(w http.ResponseWriter, r *http.Request) { writeValue(w, true) })
	f.sessionRoute("GET", el+"/enabled", func(w http.ResponseWriter, r *http.Request) { writeValue(w, false) })
	f.sessionRoute("GET", el+"/displayed", func(w http.ResponseWriter, r *http.Request) { writeValue(w, true) })
	f.sessionRoute("GET", el+"/computedrole", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "button") })
	f.sessionRoute("GET", el+"/computedlabel", func(w http.ResponseWriter, r *http.Request) { writeValue(w, "Save") })

	session := testSession(t, f)
	element := session.WebElementFromId("el-1")

	text, err := element.Text()
	require.NoError(t, err)
	assert.Equal(t, "some text", text)
	name, err := element.Name()
	require.NoError(t, err)
	assert.Equal(t, "div", name)
	attribute, err := element.GetAttribute("class")
	require.NoError(t, err)
	assert.Equal(t, "big red", attribute)
	property, err := element.GetProperty("value")
	require.NoError(t, err)
	assert.Equal(t, "typed", property)
	css, err := element.GetCssProperty("background-color")
	require.NoError(t, err)
	assert.Equal(t, "rgb(0,0,0)", css)
	rect, err := element.Rect()
	require.NoError(t, err)
	assert.Equal(t, 7.5, rect.X)
	selected, err := element.IsSelected()
	require.NoError(t, err)
	assert.True(t, selected)
	enabled, err := element.IsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
	displayed, err := element.IsDisplayed()
	require.NoError(t, err)
	assert.True(t, displayed)
	role, err := element.ComputedRole()
	require.NoError(t, err)
	assert.Equal(t, "button", role)
	label, err := element.ComputedLabel()
	require.NoError(t, err)
	assert.Equal(t, "Save", label)
}

func TestElementInteractions(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	el := "/element/el-1"
	ok := func(w http.ResponseWriter, r *http.Request) { writeValue(w, nil) }
	f.sessionRoute("POST", el+"/click", ok)
	f.sessionRoute("POST", el+"/clear", ok)
	f.sessionRoute("POST", el+"/value", ok)

	session := testSession(t, f)
	element := session.WebElementFromId("el-1")
	require.NoError(t, element.Click())
	require.NoError(t, element.Clear())
	require.NoError(t, element.SendKeys("hello ", "world"))
	body := f.lastBody(t)
	assert.Equal(t, "hello world", body["text"])
}

//Click on a removed element surfaces the server's staleness verdict as
//a typed error the caller can branch on.
func TestElementStaleness(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("POST", "/element/el-1/click", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrStaleElementReference, "element is not attached to the page document")
	})
	session := testSession(t, f)
	err := session.WebElementFromId("el-1").Click()
	var remoteErr *RemoteCommandError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrStaleElementReference, remoteErr.Code)
}

func TestShadowRootFind(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("GET", "/element/host-1/shadow", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, params{shadowRootKey: "sr-1"})
	})
	f.sessionRoute("POST", "/shadow/sr-1/element", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, params{webElementKey: "inner-1"})
	})
	f.sessionRoute("POST", "/shadow/sr-1/elements", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, []params{{webElementKey: "inner-1"}})
	})

	session := testSession(t, f)
	host := session.WebElementFromId("host-1")
	root, err := host.ShadowRoot()
	require.NoError(t, err)
	assert.Equal(t, "sr-1", root.id)

	inner, err := root.FindElement(CSS_Selector, ".inner")
	require.NoError(t, err)
	assert.Equal(t, "inner-1", inner.id)

	all, err := root.FindElements(CSS_Selector, ".inner")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetActiveElement(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("GET", "/element/active", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, params{webElementKey: "focused-1"})
	})
	session := testSession(t, f)
	element, err := session.GetActiveElement()
	require.NoError(t, err)
	assert.Equal(t, "focused-1", element.id)
}

func TestElementScreenshot(t *testing.T) {
	t.Parallel()
	f := newFakeServer(t)
	f.sessionRoute("GET", "/element/el-1/screenshot", func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, "cGl4ZWxz") //base64 "pixels"
	})
	session := testSession(t, f)
	data, err := session.WebElementFromId("el-1").Screenshot()
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}
