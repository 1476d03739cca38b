// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"encoding/json"
	"errors"
)

var errNoReference = errors.New("no object reference in response value")

//Well-known keys tagging object references on the wire. These are fixed
//by the W3C WebDriver specification and must match exactly.
const (
	webElementKey = "element-6066-11e4-a52e-4f735466cecf"
	shadowRootKey = "shadow-6066-11e4-a52e-4f735466cecf"
)

//encodeArg replaces local proxy objects with their wire-format reference
//tokens. Slices are encoded member-wise; plain maps and primitives pass
//through unchanged, matching the WebDriver script-argument encoding.
func encodeArg(arg interface{}) interface{} {
	switch x := arg.(type) {
	case WebElement:
		return map[string]string{webElementKey: x.id}
	case *WebElement:
		return map[string]string{webElementKey: x.id}
	case ShadowRoot:
		return map[string]string{shadowRootKey: x.id}
	case *ShadowRoot:
		return map[string]string{shadowRootKey: x.id}
	case []interface{}:
		encoded := make([]interface{}, len(x))
		for i, v := range x {
			encoded[i] = encodeArg(v)
		}
		return encoded
	}
	return arg
}

func encodeArgs(args []interface{}) []interface{} {
	if args == nil {
		//the wire format wants "args": [], never null
		return []interface{}{}
	}
	encoded := encodeArg(args).([]interface{})
	return encoded
}

//decodeValue replaces wire-format reference tokens with proxy objects
//bound to the session. A single-key map whose key is one of the
//well-known tags is always treated as a reference, even if a script
//legitimately produced such a map; the ambiguity is inherent to the
//protocol.
func (s *Session) decodeValue(value interface{}) interface{} {
	switch x := value.(type) {
	case []interface{}:
		decoded := make([]interface{}, len(x))
		for i, v := range x {
			decoded[i] = s.decodeValue(v)
		}
		return decoded
	case map[string]interface{}:
		if len(x) == 1 {
			if id, ok := x[webElementKey].(string); ok {
				return WebElement{s: s, id: id}
			}
			if id, ok := x[shadowRootKey].(string); ok {
				return ShadowRoot{s: s, id: id}
			}
		}
	}
	return value
}

//decodeElement parses a find-element response body into a proxy.
func (s *Session) decodeElement(data []byte) (WebElement, error) {
	ref := map[string]string{}
	if err := json.Unmarshal(data, &ref); err != nil {
		return WebElement{}, &MalformedResponseError{Body: data, Err: err}
	}
	if id, ok := ref[webElementKey]; ok {
		return WebElement{s: s, id: id}, nil
	}
	//tolerate servers using a non-standard reference key
	for _, id := range ref {
		return WebElement{s: s, id: id}, nil
	}
	return WebElement{}, &MalformedResponseError{Body: data, Err: errNoReference}
}

func (s *Session) decodeElements(data []byte) ([]WebElement, error) {
	var refs []map[string]string
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, &MalformedResponseError{Body: data, Err: err}
	}
	elements := make([]WebElement, 0, len(refs))
	for _, ref := range refs {
		if id, ok := ref[webElementKey]; ok {
			elements = append(elements, WebElement{s: s, id: id})
			continue
		}
		for _, id := range ref {
			elements = append(elements, WebElement{s: s, id: id})
			break
		}
	}
	return elements, nil
}

func (s *Session) decodeShadowRoot(data []byte) (ShadowRoot, error) {
	ref := map[string]string{}
	if err := json.Unmarshal(data, &ref); err != nil {
		return ShadowRoot{}, &MalformedResponseError{Body: data, Err: err}
	}
	if id, ok := ref[shadowRootKey]; ok {
		return ShadowRoot{s: s, id: id}, nil
	}
	return ShadowRoot{}, &MalformedResponseError{Body: data, Err: errNoReference}
}
