// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import "fmt"

//RemoteDriver talks to an already-running WebDriver server, e.g. a
//Selenium Grid node. Nothing is launched or stopped locally.
type RemoteDriver struct {
	WebDriverCore
	Host string
	Port int
	//Browser name sent as the default "browserName" capability.
	Browser string
	// Trace every request and response.
	Verbose bool
}

func NewRemoteDriver(host string, port int, browser string) *RemoteDriver {
	d := &RemoteDriver{Host: host, Port: port, Browser: browser}
	d.url = fmt.Sprintf("http://%s:%d", host, port)
	d.Timeout = DefaultTimeout
	return d
}

//Start verifies the server is reachable; the remote server's lifecycle
//is not ours to manage.
func (d *RemoteDriver) Start() error {
	d.logger = newLogger(d.Verbose)
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return probePortAddr(d.Host, d.Port, timeout)
}

func (d *RemoteDriver) Stop() error { return nil }

func (d *RemoteDriver) NewSession(capabilities Capabilities) (*Session, error) {
	session, err := d.newSession(d.Browser, capabilities)
	if err != nil {
		return nil, err
	}
	session.wd = d
	return session, nil
}
