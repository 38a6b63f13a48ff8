package checks

import (
	"errors"

	"webup/hostup/domain"
	"webup/hostup/logger"

	"github.com/Songmu/prompter"
)

// ErrAborted is returned by Gate when a check fails or the operator declines
// to continue. The caller is expected to exit with a non-zero status.
var ErrAborted = errors.New("checks failed")

// Policy decides what happens when a check's predicate fails.
type Policy int

const (
	// Fatal checks abort the pipeline.
	Fatal Policy = iota
	// WarnConfirm checks ask the operator whether to continue. In silent
	// mode the prompt is suppressed and the pipeline continues with a
	// warning.
	WarnConfirm
)

// Result is the outcome of a single predicate evaluation.
type Result struct {
	OK      bool
	Message string
}

// Check is a named predicate with an attached failure policy.
type Check struct {
	Name       string
	Policy     Policy
	LogSuccess bool
	Run        func() Result
}

// Gate evaluates the given checks in order and returns ErrAborted as soon as
// one of them fails after its policy has been applied.
func Gate(ctx domain.ExecutionContext, cks ...Check) error {
	for _, c := range cks {
		if !Evaluate(ctx, c) {
			logger.Error("Checks failed")
			return ErrAborted
		}
	}
	return nil
}

// Evaluate runs a single check and applies its failure policy. A warn check
// that the operator accepts counts as passed even though the literal
// predicate was false.
func Evaluate(ctx domain.ExecutionContext, c Check) bool {
	res := c.Run()

	if res.Message != "" && (!res.OK || c.LogSuccess) {
		switch {
		case res.OK:
			logger.Success("%s", res.Message)
		case c.Policy == WarnConfirm:
			logger.Warn("%s", res.Message)
		default:
			logger.Error("%s", res.Message)
		}
	}

	if res.OK {
		return true
	}

	if c.Policy == WarnConfirm {
		if ctx.Silent {
			logger.Warn("Continuing anyway")
			return true
		}
		if prompter.YN("Do you want to continue?", false) {
			return true
		}
		logger.Error("Aborted by user")
	}

	return false
}
