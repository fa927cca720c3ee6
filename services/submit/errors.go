// Package submit drives write transactions through a single lifecycle:
// validate locally, hand to the signer, wait for the mined receipt, then
// refresh the projections the write touched.
package submit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
)

// Code classifies a failed submission for the caller.
type Code string

const (
	CodeLocalValidation  Code = "local_validation"
	CodeUserDeclined     Code = "user_declined"
	CodeContractReverted Code = "contract_reverted"
	CodeProviderError    Code = "provider_error"
)

// Error is a classified submission failure. Message is safe to show to an
// end user as-is.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func Local(format string, args ...interface{}) *Error {
	return &Error{Code: CodeLocalValidation, Message: fmt.Sprintf(format, args...)}
}

func Declined(message string) *Error {
	return &Error{Code: CodeUserDeclined, Message: message}
}

func Reverted(reason string) *Error {
	if reason == "" {
		reason = "the contract rejected this transaction"
	}
	return &Error{Code: CodeContractReverted, Message: reason}
}

func Provider(err error) *Error {
	return &Error{Code: CodeProviderError, Message: err.Error()}
}

const revertMarker = "execution reverted"

// Classify maps a raw error from signing or sending into a submission error.
// Keystore lock errors count as the user declining to sign; revert strings
// from the node carry the contract's reason through.
func Classify(err error) *Error {
	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}
	if errors.Is(err, keystore.ErrLocked) || errors.Is(err, keystore.ErrDecrypt) {
		return Declined("signing was declined; the account is locked")
	}
	if reason, ok := revertReason(err); ok {
		return Reverted(reason)
	}
	return Provider(err)
}

// revertReason extracts the reason string from a node revert error, if any.
func revertReason(err error) (string, bool) {
	msg := err.Error()
	idx := strings.Index(msg, revertMarker)
	if idx < 0 {
		return "", false
	}
	reason := strings.TrimPrefix(msg[idx+len(revertMarker):], ":")
	return strings.TrimSpace(reason), true
}
