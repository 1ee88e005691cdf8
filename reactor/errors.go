// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reactor

import "errors"

var (
	// ErrInvalidFD is returned for a negative fd.
	ErrInvalidFD = errors.New("reactor: invalid file descriptor")
	// ErrAlreadyRegistered is returned by RegisterFD/RegisterFDWithTimeout
	// for an fd already known to the reactor.
	ErrAlreadyRegistered = errors.New("reactor: file descriptor already registered")
	// ErrNotRegistered is returned by ModifyFD/UnregisterFD/RefreshFDTimeout
	// for an fd the reactor does not know about.
	ErrNotRegistered = errors.New("reactor: file descriptor not registered")
	// ErrStopped is returned by Run if the reactor was already running (or
	// already stopped) when called.
	ErrStopped = errors.New("reactor: already running or stopped")
)
