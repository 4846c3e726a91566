package web

import (
	"net/http"
	"strings"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
)

// glogWriter sends access log lines to glog.
type glogWriter struct{}

func (glogWriter) Write(p []byte) (int, error) {
	glog.Info(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

type glogRecoveryLogger struct{}

func (glogRecoveryLogger) Println(args ...interface{}) {
	glog.Errorln(args...)
}

// Wrap adds access logging and panic recovery to h.
func Wrap(h http.Handler) http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(glogRecoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(handlers.LoggingHandler(glogWriter{}, h))
}
