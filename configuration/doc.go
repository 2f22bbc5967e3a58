// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the tool configuration from a Lua file
//
// The configuration file is executed as a Lua script and the table it
// returns is mapped onto the Configuration structure, so values can
// be computed rather than just written literally.
package configuration
