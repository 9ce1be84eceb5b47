package logging

import (
	waLog "go.mau.fi/whatsmeow/util/log"
)

// WA returns a whatsmeow logger writing through this package. The client is
// chatty at info level, so only warnings and errors are always shown.
func WA(module string) waLog.Logger {
	return waLogger{subsystem: "wa/" + module}
}

type waLogger struct {
	subsystem string
}

func (l waLogger) Errorf(msg string, args ...any) { Warn(l.subsystem, "ERROR "+msg, args...) }
func (l waLogger) Warnf(msg string, args ...any)  { Warn(l.subsystem, msg, args...) }
func (l waLogger) Infof(msg string, args ...any)  { Debug(l.subsystem, msg, args...) }
func (l waLogger) Debugf(msg string, args ...any) { Debug(l.subsystem, msg, args...) }

func (l waLogger) Sub(module string) waLog.Logger {
	return waLogger{subsystem: l.subsystem + "/" + module}
}
