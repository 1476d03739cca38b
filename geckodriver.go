// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/phayes/freeport"
)

type GeckoDriver struct {
	WebDriverCore
	//The port that geckodriver listens on. 0 picks a free port on Start.
	Port int
	//Path to the firefox binary. If "" geckodriver finds it on its own.
	FirefoxPath string
	// Log file to dump geckodriver stdout/stderr. If "" send to terminal. Default: ""
	LogFile string
	// Start method fails if geckodriver doesn't start in less than StartTimeout. Default 20s.
	StartTimeout time.Duration
	// Trace every request and response.
	Verbose bool

	path    string
	cmd     *exec.Cmd
	logFile *os.File
}

//create a new service using geckodriver.
func NewGeckoDriver(path string) *GeckoDriver {
	d := &GeckoDriver{}
	d.path = path
	d.Port = 0
	d.StartTimeout = 20 * time.Second
	d.Timeout = DefaultTimeout
	return d
}

func (d *GeckoDriver) Start() error {
	gsferr := "geckodriver start failed: "
	if d.cmd != nil {
		return errors.New(gsferr + "geckodriver already running")
	}
	d.logger = newLogger(d.Verbose)

	if d.Port == 0 {
		port, err := freeport.GetFreePort()
		if err != nil {
			return errors.New(gsferr + err.Error())
		}
		d.Port = port
	}

	d.url = fmt.Sprintf("http://127.0.0.1:%d", d.Port)
	switches := []string{"--port", strconv.Itoa(d.Port)}
	if d.FirefoxPath != "" {
		switches = append(switches, "--binary", d.FirefoxPath)
	}

	d.cmd = exec.Command(d.path, switches...)
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return errors.New(gsferr + err.Error())
	}
	stderr, err := d.cmd.StderrPipe()
	if err != nil {
		return errors.New(gsferr + err.Error())
	}
	if err := d.cmd.Start(); err != nil {
		return errors.New(gsferr + err.Error())
	}
	if d.LogFile != "" {
		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		d.logFile, err = os.OpenFile(d.LogFile, flags, 0640)
		if err != nil {
			return err
		}
		go io.Copy(d.logFile, stdout)
		go io.Copy(d.logFile, stderr)
	} else {
		go io.Copy(os.Stdout, stdout)
		go io.Copy(os.Stderr, stderr)
	}
	return probePort(d.Port, d.StartTimeout)
}

func (d *GeckoDriver) Stop() error {
	if d.cmd == nil {
		return errors.New("stop failed: geckodriver not running")
	}
	defer func() {
		d.cmd = nil
	}()
	d.cmd.Process.Signal(os.Interrupt)
	if d.logFile != nil {
		d.logFile.Close()
	}
	return nil
}

func (d *GeckoDriver) NewSession(capabilities Capabilities) (*Session, error) {
	session, err := d.newSession("firefox", capabilities)
	if err != nil {
		return nil, err
	}
	session.wd = d
	return session, nil
}
