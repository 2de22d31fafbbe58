// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sigalign

import "github.com/pkg/errors"

// ErrParameterInvalid is the sentinel behind every construction-time
// rejection: zero penalties, a pattern size that can't be derived, or a
// cutoff outside (0, 1]. New never returns a partially built
// Aligner alongside it.
var ErrParameterInvalid = errors.New("sigalign: invalid parameter")

func invalidParameterf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParameterInvalid, format, args...)
}

// wrapReferenceFault bubbles up a failure from a caller-supplied
// SequenceProvider untouched apart from call-site context: the core never
// inspects or retries it.
func wrapReferenceFault(cause error, context string) error {
	if cause == nil {
		return nil
	}
	return errors.Wrap(cause, context)
}
