/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package message defines the header that precedes every carrier request.
package message

import (
	"strings"
	"time"

	"dirpx.dev/postnl/apis"
	"dirpx.dev/postnl/entity"
	"dirpx.dev/postnl/properties"
)

// TimeStampLayout is the carrier's message timestamp format.
const TimeStampLayout = "02-01-2006 15:04:05"

// DefaultPrintertype is the printer type of a LabellingMessage built by
// NewLabelling.
const DefaultPrintertype = "GraphicFile|PDF"

// Message identifies one request.
type Message struct {
	entity.Base
	MessageID        *string
	MessageTimeStamp *string
}

// New returns a Message stamped with the current time.
func New() *Message {
	return NewAt(time.Now())
}

// NewAt returns a Message stamped with at. The message id is derived from
// the entity identity.
func NewAt(at time.Time) *Message {
	m := entity.New[Message]()
	m.MessageID = entity.String(shortID(m.EntityID()))
	m.MessageTimeStamp = entity.String(at.Format(TimeStampLayout))
	return m
}

// LabellingMessage is the header of label requests.
type LabellingMessage struct {
	entity.Base
	MessageID        *string
	MessageTimeStamp *string
	Printertype      *string
}

// NewLabelling returns a LabellingMessage stamped with the current time and
// the given printer type ("" selects DefaultPrintertype).
func NewLabelling(printertype string) *LabellingMessage {
	if printertype == "" {
		printertype = DefaultPrintertype
	}
	m := entity.New[LabellingMessage]()
	m.MessageID = entity.String(shortID(m.EntityID()))
	m.MessageTimeStamp = entity.String(time.Now().Format(TimeStampLayout))
	m.Printertype = entity.String(printertype)
	return m
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// Register adds the message kinds to reg.
func Register(reg apis.Registry) error {
	return entity.RegisterAll(reg,
		entity.Define[Message](apis.ScopeMessage, properties.DomainWithShipping("MessageID", "MessageTimeStamp")),
		entity.Define[LabellingMessage](apis.ScopeMessage, properties.Domain("MessageID", "MessageTimeStamp", "Printertype")),
	)
}
