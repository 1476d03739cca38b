// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"encoding/json"
	"strings"
)

//WebElement is a local handle on a server-side DOM node. Any number of
//handles may point at the same node. A handle goes stale when the node
//leaves the DOM; the server reports that as "stale element reference"
//on the next operation, there is no local detection.
type WebElement struct {
	s  *Session
	id string
}

//ShadowRoot is a local handle on a server-side shadow tree, with the
//same staleness semantics as WebElement.
type ShadowRoot struct {
	s  *Session
	id string
}

//Retrieve the element's shadow root.
func (e WebElement) ShadowRoot() (ShadowRoot, error) {
	data, err := e.s.wd.do(nil, cmdGetElementShadowRoot, elementParams(e))
	if err != nil {
		return ShadowRoot{}, err
	}
	return e.s.decodeShadowRoot(data)
}

//Search for an element on the page, starting from the identified element.
func (e WebElement) FindElement(using FindElementStrategy, value string) (WebElement, error) {
	if !using.valid() {
		return WebElement{}, errBadStrategy
	}
	p := params{"using": using, "value": value}
	data, err := e.s.wd.do(p, cmdFindElementFromElement, elementParams(e))
	if err != nil {
		return WebElement{}, err
	}
	return e.s.decodeElement(data)
}

//Search for multiple elements on the page, starting from the identified
//element.
func (e WebElement) FindElements(using FindElementStrategy, value string) ([]WebElement, error) {
	if !using.valid() {
		return nil, errBadStrategy
	}
	p := params{"using": using, "value": value}
	data, err := e.s.wd.do(p, cmdFindElementsFromElement, elementParams(e))
	if err != nil {
		return nil, err
	}
	return e.s.decodeElements(data)
}

//Determine if an OPTION element, or an INPUT element of type checkbox
//or radiobutton is currently selected.
func (e WebElement) IsSelected() (bool, error) {
	return e.boolCommand(cmdIsElementSelected)
}

//Determine if an element is currently enabled.
func (e WebElement) IsEnabled() (bool, error) {
	return e.boolCommand(cmdIsElementEnabled)
}

//Determine if an element is currently displayed. This is a
//non-standard extension endpoint most drivers implement.
func (e WebElement) IsDisplayed() (bool, error) {
	return e.boolCommand(cmdIsElementDisplayed)
}

func (e WebElement) boolCommand(command string) (bool, error) {
	data, err := e.s.wd.do(nil, command, elementParams(e))
	if err != nil {
		return false, err
	}
	var value bool
	err = json.Unmarshal(data, &value)
	return value, err
}

//Get the value of an element's attribute.
func (e WebElement) GetAttribute(name string) (string, error) {
	return e.namedStringCommand(cmdGetElementAttribute, "name", name)
}

//Get the value of an element's DOM property.
func (e WebElement) GetProperty(name string) (string, error) {
	return e.namedStringCommand(cmdGetElementProperty, "name", name)
}

//Query the value of an element's computed CSS property.
func (e WebElement) GetCssProperty(name string) (string, error) {
	return e.namedStringCommand(cmdGetElementCSSValue, "property name", name)
}

func (e WebElement) namedStringCommand(command, key, name string) (string, error) {
	p := elementParams(e)
	p.extra = map[string]string{key: name}
	data, err := e.s.wd.do(nil, command, p)
	if err != nil {
		return "", err
	}
	return unmarshalString(data)
}

//Returns the visible text for the element.
func (e WebElement) Text() (string, error) {
	data, err := e.s.wd.do(nil, cmdGetElementText, elementParams(e))
	if err != nil {
		return "", err
	}
	return unmarshalString(data)
}

//Query for an element's tag name.
func (e WebElement) Name() (string, error) {
	data, err := e.s.wd.do(nil, cmdGetElementTagName, elementParams(e))
	if err != nil {
		return "", err
	}
	return unmarshalString(data)
}

//Determine an element's size and location on the page. The point (0, 0)
//refers to the upper-left corner of the page.
func (e WebElement) Rect() (Rect, error) {
	data, err := e.s.wd.do(nil, cmdGetElementRect, elementParams(e))
	if err != nil {
		return Rect{}, err
	}
	var rect Rect
	err = json.Unmarshal(data, &rect)
	return rect, err
}

//Get the element's computed WAI-ARIA role.
func (e WebElement) ComputedRole() (string, error) {
	data, err := e.s.wd.do(nil, cmdGetComputedRole, elementParams(e))
	if err != nil {
		return "", err
	}
	return unmarshalString(data)
}

//Get the element's computed accessibility label.
func (e WebElement) ComputedLabel() (string, error) {
	data, err := e.s.wd.do(nil, cmdGetComputedLabel, elementParams(e))
	if err != nil {
		return "", err
	}
	return unmarshalString(data)
}

//Click on an element.
func (e WebElement) Click() error {
	_, err := e.s.wd.do(nil, cmdElementClick, elementParams(e))
	return err
}

//Clear a TEXTAREA or text INPUT element's value.
func (e WebElement) Clear() error {
	_, err := e.s.wd.do(nil, cmdElementClear, elementParams(e))
	return err
}

//Send a sequence of key strokes to an element. Each argument may be a
//literal string or one of the special-key constants; all arguments are
//concatenated into a single text value.
func (e WebElement) SendKeys(keys ...string) error {
	p := params{"text": strings.Join(keys, "")}
	_, err := e.s.wd.do(p, cmdElementSendKeys, elementParams(e))
	return err
}

//Take a screenshot of the element. Returns decoded PNG data.
func (e WebElement) Screenshot() ([]byte, error) {
	data, err := e.s.wd.do(nil, cmdTakeElementScreenshot, elementParams(e))
	if err != nil {
		return nil, err
	}
	return decodeBase64Value(data)
}

//Search for an element inside the shadow tree.
func (r ShadowRoot) FindElement(using FindElementStrategy, value string) (WebElement, error) {
	if !using.valid() {
		return WebElement{}, errBadStrategy
	}
	p := params{"using": using, "value": value}
	data, err := r.s.wd.do(p, cmdFindElementFromShadowRoot, shadowParams(r))
	if err != nil {
		return WebElement{}, err
	}
	return r.s.decodeElement(data)
}

//Search for multiple elements inside the shadow tree. An empty result
//is not an error.
func (r ShadowRoot) FindElements(using FindElementStrategy, value string) ([]WebElement, error) {
	if !using.valid() {
		return nil, errBadStrategy
	}
	p := params{"using": using, "value": value}
	data, err := r.s.wd.do(p, cmdFindElementsFromShadowRoot, shadowParams(r))
	if err != nil {
		return nil, err
	}
	return r.s.decodeElements(data)
}

func unmarshalString(data []byte) (string, error) {
	var value string
	err := json.Unmarshal(data, &value)
	return value, err
}
