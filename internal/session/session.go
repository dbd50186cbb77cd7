//
// Copyright 2022 FRAGATA COMPUTER SYSTEMS AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package session identifies one run of the driver: a random ID for the
// invocation and a start-time banner for the optional stats output. The
// driver prints the banner; the ID does not appear in any diagnostic or
// stats output.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"
)

// Session is created once at driver startup.
type Session struct {
	ID      uuid.UUID
	Started time.Time
}

// New starts a session with a fresh random ID.
func New() *Session {
	return &Session{
		ID:      uuid.New(),
		Started: time.Now(),
	}
}

// Banner formats the session's start time for the stats output (EXTERNAL
// INTERFACES, §6), e.g. "2026-08-06 14:03:05".
func (s *Session) Banner() string {
	return strftime.Format("%Y-%m-%d %H:%M:%S", s.Started)
}
