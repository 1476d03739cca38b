// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import "github.com/google/uuid"

//input device types
const (
	deviceNone    = "none"
	deviceKey     = "key"
	devicePointer = "pointer"
	deviceWheel   = "wheel"
)

//wire action types
const (
	actionPause       = "pause"
	actionKeyDown     = "keyDown"
	actionKeyUp       = "keyUp"
	actionPointerDown = "pointerDown"
	actionPointerUp   = "pointerUp"
	actionPointerMove = "pointerMove"
	actionScroll      = "scroll"
)

type MouseButton int

const (
	LeftButton   = MouseButton(0)
	MiddleButton = MouseButton(1)
	RightButton  = MouseButton(2)
)

//Action is one discrete input event: a key press or release, a pointer
//press, release or move, a wheel scroll, or a pause.
type Action struct {
	kind     string
	device   string
	value    string
	button   MouseButton
	x        int
	y        int
	deltaX   int
	deltaY   int
	duration int
	origin   interface{}
}

//Pause for the given number of milliseconds. Pauses are device-agnostic
//and merge into whatever sequence is current.
func Pause(ms int) Action {
	return Action{kind: actionPause, device: deviceNone, duration: ms}
}

//Press a key. value is a single character or a special-key constant.
func KeyDown(value string) Action {
	return Action{kind: actionKeyDown, device: deviceKey, value: value}
}

//Release a key.
func KeyUp(value string) Action {
	return Action{kind: actionKeyUp, device: deviceKey, value: value}
}

//Press a pointer button.
func PointerDown(button MouseButton) Action {
	return Action{kind: actionPointerDown, device: devicePointer, button: button}
}

//Release a pointer button.
func PointerUp(button MouseButton) Action {
	return Action{kind: actionPointerUp, device: devicePointer, button: button}
}

//Move the pointer to (x, y) over the given number of milliseconds.
//origin may be nil (the viewport), the string "pointer", or a
//WebElement the coordinates are relative to.
func PointerMove(x, y, ms int, origin interface{}) Action {
	return Action{kind: actionPointerMove, device: devicePointer, x: x, y: y, duration: ms, origin: origin}
}

//Scroll the wheel by (deltaX, deltaY) starting at (x, y), over the
//given number of milliseconds. origin follows the PointerMove rules.
func Scroll(x, y, deltaX, deltaY, ms int, origin interface{}) Action {
	return Action{kind: actionScroll, device: deviceWheel, x: x, y: y, deltaX: deltaX, deltaY: deltaY, duration: ms, origin: origin}
}

//ActionSequence is an ordered list of actions for one input device.
type ActionSequence struct {
	inputType string
	id        string
	actions   []Action
}

func newSequence(a Action) ActionSequence {
	return ActionSequence{
		inputType: a.device,
		//request-scoped correlation id, not a security token
		id:      uuid.NewString(),
		actions: []Action{a},
	}
}

//Stream groups a flat list of actions into per-device sequences,
//strictly in call order. An action joins the current sequence when it
//is a pause, or when the sequence is still untyped, or when the types
//match; otherwise it starts a new sequence. A sequence locks to a
//concrete device type the first time a non-pause action lands in it.
func Stream(actions ...Action) []ActionSequence {
	var sequences []ActionSequence
	for _, a := range actions {
		if len(sequences) == 0 {
			sequences = append(sequences, newSequence(a))
			continue
		}
		current := &sequences[len(sequences)-1]
		switch {
		case a.device == deviceNone, current.inputType == deviceNone, current.inputType == a.device:
			current.actions = append(current.actions, a)
			if current.inputType == deviceNone && a.device != deviceNone {
				current.inputType = a.device
			}
		default:
			sequences = append(sequences, newSequence(a))
		}
	}
	return sequences
}

//encodeSequences emits the wire form of the grouped sequences. Element
//origins are replaced by wire references.
func encodeSequences(sequences []ActionSequence) []interface{} {
	encoded := make([]interface{}, len(sequences))
	for i, seq := range sequences {
		m := params{
			"type":    seq.inputType,
			"id":      seq.id,
			"actions": encodeSequenceActions(seq.actions),
		}
		if seq.inputType == devicePointer {
			m["parameters"] = params{"pointerType": "mouse"}
		}
		encoded[i] = m
	}
	return encoded
}

func encodeSequenceActions(actions []Action) []interface{} {
	encoded := make([]interface{}, len(actions))
	for i, a := range actions {
		encoded[i] = a.encode()
	}
	return encoded
}

func (a Action) encode() params {
	m := params{"type": a.kind}
	switch a.kind {
	case actionPause:
		m["duration"] = a.duration
	case actionKeyDown, actionKeyUp:
		m["value"] = a.value
	case actionPointerDown, actionPointerUp:
		m["button"] = int(a.button)
	case actionPointerMove:
		m["x"] = a.x
		m["y"] = a.y
		m["duration"] = a.duration
		m["origin"] = encodeOrigin(a.origin)
	case actionScroll:
		m["x"] = a.x
		m["y"] = a.y
		m["deltaX"] = a.deltaX
		m["deltaY"] = a.deltaY
		m["duration"] = a.duration
		m["origin"] = encodeOrigin(a.origin)
	}
	return m
}

func encodeOrigin(origin interface{}) interface{} {
	if origin == nil {
		return "viewport"
	}
	return encodeArg(origin)
}
