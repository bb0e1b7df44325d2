package fiostat

import (
	"fmt"
	"io"
	"os"
)

const (
	// ErrorColor formatted color red
	ErrorColor = "\033[1;31m%s\033[0m"
	// SuccessColor formatted color green
	SuccessColor = "\033[1;32m%s\033[0m"
	// YellowColor formatted color yellow
	YellowColor = "\033[1;33m%s\033[0m"
)

// Status is a single line of a check or run report
type Status struct {
	StatusCode    StatusCode
	StatusMessage string
	Raw           interface{} `json:",omitempty"`
}

// StatusCode type definition
type StatusCode string

const (
	// StatusOK is the success status code
	StatusOK = StatusCode("OK")
	// StatusWarning is the informational status code
	StatusWarning = StatusCode("Warning")
	// StatusError is the failure status code
	StatusError = StatusCode("Error")
	// StatusInfo is the Info status code
	StatusInfo = StatusCode("Info")
)

// Fprint writes the status to w with a given prefix
func (s *Status) Fprint(w io.Writer, prefix string) {
	message := prefix + s.StatusMessage
	switch s.StatusCode {
	case StatusOK:
		fmt.Fprintf(w, "%s  -  "+SuccessColor+"\n", message, "OK")
	case StatusError:
		fmt.Fprintf(w, "%s  -  "+ErrorColor+"\n", message, "Error")
	case StatusWarning:
		fmt.Fprintf(w, YellowColor+"\n", message)
	default:
		fmt.Fprintln(w, message)
	}
}

// Print prints a status message with a given prefix
func (s *Status) Print(prefix string) {
	s.Fprint(os.Stdout, prefix)
}

// TestOutput groups the statuses of one check or run
type TestOutput struct {
	TestName string
	Status   []Status
	Raw      interface{} `json:",omitempty"`
}

// Fprint writes the test output to w
func (t *TestOutput) Fprint(w io.Writer) {
	fmt.Fprintln(w, t.TestName+":")
	for _, status := range t.Status {
		status.Fprint(w, "  ")
	}
}

// Print prints a TestOutput to stdout
func (t *TestOutput) Print() {
	t.Fprint(os.Stdout)
}

// AddStatus appends a status line
func (t *TestOutput) AddStatus(code StatusCode, mesg string) {
	t.Status = append(t.Status, makeStatus(code, mesg, nil))
}

func MakeTestOutput(testname string, code StatusCode, mesg string, raw interface{}) *TestOutput {
	return &TestOutput{
		TestName: testname,
		Status:   []Status{makeStatus(code, mesg, nil)},
		Raw:      raw,
	}
}

func makeStatus(code StatusCode, mesg string, raw interface{}) Status {
	return Status{
		StatusCode:    code,
		StatusMessage: mesg,
		Raw:           raw,
	}
}
