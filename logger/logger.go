package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// One tagged line per event. The tags line up so the operator can scan the
// output of a full pipeline run.

func Success(format string, a ...interface{}) {
	fmt.Printf("[ %s ] %s\n", color.GreenString("OK  "), fmt.Sprintf(format, a...))
}

func Info(format string, a ...interface{}) {
	fmt.Printf("[ INFO ] %s\n", fmt.Sprintf(format, a...))
}

func Warn(format string, a ...interface{}) {
	fmt.Printf("[ %s ] %s\n", color.YellowString("WARN"), fmt.Sprintf(format, a...))
}

func Error(format string, a ...interface{}) {
	fmt.Printf("[ %s ] %s\n", color.RedString("ERR "), fmt.Sprintf(format, a...))
}
