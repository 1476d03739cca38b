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

type ChromeDriver struct {
	WebDriverCore
	//The port that ChromeDriver listens on. 0 picks a free port on Start.
	Port int
	//The URL path prefix to use for all incoming WebDriver REST requests. Default: ""
	BaseUrl string
	//The path to use for the ChromeDriver server log. Default: ./chromedriver.log
	LogPath string
	// Log file to dump chromedriver stdout/stderr. If "" send to terminal. Default: ""
	LogFile string
	// Start method fails if chromedriver doesn't start in less than StartTimeout. Default 20s.
	StartTimeout time.Duration
	// Trace every request and response.
	Verbose bool

	path    string
	cmd     *exec.Cmd
	logFile *os.File
}

//create a new service using chromedriver.
func NewChromeDriver(path string) *ChromeDriver {
	d := &ChromeDriver{}
	d.path = path
	d.Port = 0
	d.BaseUrl = ""
	d.LogPath = "chromedriver.log"
	d.StartTimeout = 20 * time.Second
	d.Timeout = DefaultTimeout
	return d
}

func (d *ChromeDriver) Start() error {
	csferr := "chromedriver start failed: "
	if d.cmd != nil {
		return errors.New(csferr + "chromedriver already running")
	}
	d.logger = newLogger(d.Verbose)

	if d.Port == 0 {
		port, err := freeport.GetFreePort()
		if err != nil {
			return errors.New(csferr + err.Error())
		}
		d.Port = port
	}

	if d.LogPath != "" {
		//check if log-path is writable
		file, err := os.OpenFile(d.LogPath, os.O_WRONLY|os.O_CREATE, 0664)
		if err != nil {
			return errors.New(csferr + "unable to write in log path: " + err.Error())
		}
		file.Close()
	}

	d.url = fmt.Sprintf("http://127.0.0.1:%d%s", d.Port, d.BaseUrl)
	var switches []string
	switches = append(switches, "--port="+strconv.Itoa(d.Port))
	if d.LogPath != "" {
		switches = append(switches, "--log-path="+d.LogPath)
	}
	if d.BaseUrl != "" {
		switches = append(switches, "--url-base="+d.BaseUrl)
	}

	d.cmd = exec.Command(d.path, switches...)
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return errors.New(csferr + err.Error())
	}
	stderr, err := d.cmd.StderrPipe()
	if err != nil {
		return errors.New(csferr + err.Error())
	}
	if err := d.cmd.Start(); err != nil {
		return errors.New(csferr + err.Error())
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

func (d *ChromeDriver) Stop() error {
	if d.cmd == nil {
		return errors.New("stop failed: chromedriver not running")
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

func (d *ChromeDriver) NewSession(capabilities Capabilities) (*Session, error) {
	session, err := d.newSession("chrome", capabilities)
	if err != nil {
		return nil, err
	}
	session.wd = d
	return session, nil
}
