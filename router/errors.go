// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import "errors"

// ErrNotFound is reported when no route's path shape matches the request.
var ErrNotFound = errors.New("router: no matching route")

// ErrMethodNotAllowed is reported when some route's path shape matches but
// none of them accept the request's method. [DispatchInfo.AllowedMethods]
// carries the union of methods that did match the shape.
var ErrMethodNotAllowed = errors.New("router: method not allowed")
