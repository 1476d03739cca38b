// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import "strings"

//Special key codes from the WebDriver key table: single code points in
//the Unicode private use area, recognized by the server when they
//appear in key input.
const (
	NullKey       = ""
	CancelKey     = ""
	HelpKey       = ""
	BackspaceKey  = ""
	TabKey        = ""
	ClearKey      = ""
	ReturnKey     = ""
	EnterKey      = ""
	ShiftKey      = ""
	ControlKey    = ""
	AltKey        = ""
	PauseKey      = ""
	EscapeKey     = ""
	SpaceKey      = ""
	PageUpKey     = ""
	PageDownKey   = ""
	EndKey        = ""
	HomeKey       = ""
	LeftArrowKey  = ""
	UpArrowKey    = ""
	RightArrowKey = ""
	DownArrowKey  = ""
	InsertKey     = ""
	DeleteKey     = ""
	SemicolonKey  = ""
	EqualsKey     = ""
	Numpad0Key    = ""
	Numpad1Key    = ""
	Numpad2Key    = ""
	Numpad3Key    = ""
	Numpad4Key    = ""
	Numpad5Key    = ""
	Numpad6Key    = ""
	Numpad7Key    = ""
	Numpad8Key    = ""
	Numpad9Key    = ""
	MultiplyKey   = ""
	AddKey        = ""
	SeparatorKey  = ""
	SubtractKey   = ""
	DecimalKey    = ""
	DivideKey     = ""
	F1Key         = ""
	F2Key         = ""
	F3Key         = ""
	F4Key         = ""
	F5Key         = ""
	F6Key         = ""
	F7Key         = ""
	F8Key         = ""
	F9Key         = ""
	F10Key        = ""
	F11Key        = ""
	F12Key        = ""
	MetaKey       = ""
)

//Chord concatenates keys and appends the null key, which releases all
//held modifiers, so combinations like Chord(ControlKey, "c") release
//cleanly.
func Chord(keys ...string) string {
	return strings.Join(keys, "") + NullKey
}
