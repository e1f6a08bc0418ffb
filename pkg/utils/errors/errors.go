/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// HasCause recursively checks errors wrapped using Wrapf until it detects the target error
func HasCause(source, target error) bool {
	return source != nil && target != nil && errors.Is(source, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrapf wraps an error in a way compatible with HasCause
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

func WithMessagef(err error, format string, args ...any) error {
	return errors.WithMessagef(err, format, args...)
}

func Errorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

func New(message string) error {
	return errors.New(message)
}

// Join returns an error wrapping the non-nil errs, nil when there are none
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
