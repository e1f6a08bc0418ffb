/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type statusError struct{ code int }

func (e *statusError) Error() string { return "status error" }

func TestWrapfSimpleNesting(t *testing.T) {
	nestedErr := errors.New("nested err")
	err := Wrapf(nestedErr, "some error")
	assert.True(t, HasCause(err, nestedErr))
}

func TestWrapfDoubleNesting(t *testing.T) {
	nestedErr := errors.New("nested err")
	err := Wrapf(WithMessagef(nestedErr, "some error"), "other error")
	assert.True(t, HasCause(err, nestedErr))
	assert.Equal(t, "other error: some error: nested err", err.Error())
}

func TestHasCauseNil(t *testing.T) {
	assert.False(t, HasCause(nil, New("target")))
	assert.False(t, HasCause(New("source"), nil))
}

func TestAsFindsTypedError(t *testing.T) {
	err := Wrap(&statusError{code: 503}, "fetching page")

	var se *statusError
	assert.True(t, As(err, &se))
	assert.Equal(t, 503, se.code)
	assert.False(t, As(New("plain"), &se))
}

func TestJoin(t *testing.T) {
	assert.NoError(t, Join(nil, nil))
	first, second := New("first"), New("second")
	err := Join(first, nil, Wrapf(second, "wrapped"))
	assert.True(t, HasCause(err, first))
	assert.True(t, HasCause(err, second))
}
