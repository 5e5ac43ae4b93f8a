package main

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger tags every line with the component that wrote it.
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("["+tl.name+"] "+format, v...)
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Println(append([]interface{}{"[" + tl.name + "]"}, v...)...)
}

// setupLogging sends the std logger to a rotating file, and to stderr as
// well when console is set. The terminal preview owns the screen, so it
// runs without the console copy.
func setupLogging(settings configSettings, console bool) *lumberjack.Logger {
	lj := &lumberjack.Logger{
		Filename:   settings.GetString(sLogFile),
		MaxSize:    settings.GetInt(sLogMaxSize),
		MaxBackups: settings.GetInt(sLogBackups),
		MaxAge:     settings.GetInt(sLogMaxAge),
		Compress:   true,
	}

	var out io.Writer = lj
	if console {
		out = io.MultiWriter(os.Stderr, lj)
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return lj
}
