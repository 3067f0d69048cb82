// Package logging holds the process-wide zap loggers.
package logging

import "go.uber.org/zap"

var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// Init builds the real logger; before it runs the package logs to nowhere,
// which keeps tests quiet.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Log = l
	SLog = l.Sugar()
	return nil
}

// Sync flushes buffered entries; call on shutdown.
func Sync() {
	_ = Log.Sync()
}
