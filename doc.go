// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The package implements a client for the W3C WebDriver protocol,
// translating method calls into HTTP requests against a remote
// automation server and parsing JSON responses back into typed results.
//
// See https://www.w3.org/TR/webdriver/
//
// Example:
//	chromeDriver := webdriver.NewChromeDriver("/path/to/chromedriver")
//	err := chromeDriver.Start()
//	if err != nil {
//		log.Println(err)
//	}
//	session, err := chromeDriver.NewSession(webdriver.Capabilities{})
//	if err != nil {
//		log.Println(err)
//	}
//	err = session.Url("http://golang.org")
//	if err != nil {
//		log.Println(err)
//	}
//	element, err := session.FindElement(webdriver.CSS_Selector, "#page")
//	if err != nil {
//		log.Println(err)
//	}
//	text, _ := element.Text()
//	log.Println(text)
//	session.Delete()
//	chromeDriver.Stop()
//
package webdriver
