/*
Copyright 2024 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTimeFormat is the time format to use for JSON output
const DefaultTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

var _ Logger = (*JsonLogger)(nil)

// JsonLogger writes one JSON object per log line.
type JsonLogger struct {
	name       string
	timeFormat string
	timeFnc    TimeFunc

	mutex sync.Mutex
	enc   *json.Encoder
	out   io.Writer

	level int32
}

// NewJSONLogger returns a json logger.
func NewJSONLogger(opts *Options) *JsonLogger {
	if opts == nil {
		opts = &Options{}
	}

	out := opts.Output
	if out == nil {
		out = io.Discard
	}

	l := &JsonLogger{
		name:       opts.Name,
		timeFormat: DefaultTimeFormat,
		timeFnc:    time.Now,
		enc:        json.NewEncoder(out),
		out:        out,
		level:      int32(opts.Level),
	}

	if opts.TimeFnc != nil {
		l.timeFnc = opts.TimeFnc
	}
	if opts.TimeFormat != "" {
		l.timeFormat = opts.TimeFormat
	}

	return l
}

func (l *JsonLogger) log(level LogLevel, msg string, args ...interface{}) {
	if level < LogLevel(atomic.LoadInt32(&l.level)) {
		return
	}

	vals := map[string]interface{}{
		"message":   fmt.Sprintf(msg, args...),
		"timestamp": l.timeFnc().Format(l.timeFormat),
		"level":     level.String(),
	}
	if l.name != "" {
		vals["module"] = l.name
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	// unencodable lines are dropped
	_ = l.enc.Encode(vals)
}

// Debugf prints the message and args at DEBUG level
func (l *JsonLogger) Debugf(msg string, args ...interface{}) {
	l.log(LogDebug, msg, args...)
}

// Infof prints the message and args at INFO level
func (l *JsonLogger) Infof(msg string, args ...interface{}) {
	l.log(LogInfo, msg, args...)
}

// Warningf prints the message and args at WARN level
func (l *JsonLogger) Warningf(msg string, args ...interface{}) {
	l.log(LogWarn, msg, args...)
}

// Errorf prints the message and args at ERROR level
func (l *JsonLogger) Errorf(msg string, args ...interface{}) {
	l.log(LogError, msg, args...)
}

// SetLogLevel updates the logging level
func (l *JsonLogger) SetLogLevel(level LogLevel) {
	atomic.StoreInt32(&l.level, int32(level))
}

// Name returns the loggers name
func (l *JsonLogger) Name() string {
	return l.name
}

// Close the logger
func (l *JsonLogger) Close() error {
	if c, ok := l.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
