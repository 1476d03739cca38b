// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

//newLogger builds the logger a driver hands to its transport. Verbose
//raises the level to Debug, which traces every request and response.
func newLogger(verbose bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger.WithField("component", "webdriver")
}

func quietLogger() logrus.FieldLogger {
	return newLogger(false)
}

//probe the port until a reply arrives or the timeout is up
func probePort(port int, timeout time.Duration) error {
	return probePortAddr("127.0.0.1", port, timeout)
}

func probePortAddr(host string, port int, timeout time.Duration) error {
	address := fmt.Sprintf("%s:%d", host, port)
	now := time.Now()
	for {
		if conn, err := net.Dial("tcp", address); err == nil {
			if err = conn.Close(); err != nil {
				return err
			}
			break
		}
		if time.Since(now) > timeout {
			return errors.New("start failed: timeout expired")
		}
		time.Sleep(1 * time.Second)
	}
	return nil
}
