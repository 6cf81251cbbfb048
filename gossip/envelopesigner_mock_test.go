// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/luxfi/nightshade/cryptoshare/transport"
)

// MockEnvelopeSigner is a hand-maintained gomock double for
// EnvelopeSigner, shaped the way mockgen would emit it.
type MockEnvelopeSigner struct {
	ctrl     *gomock.Controller
	recorder *MockEnvelopeSignerMockRecorder
}

type MockEnvelopeSignerMockRecorder struct {
	mock *MockEnvelopeSigner
}

func NewMockEnvelopeSigner(ctrl *gomock.Controller) *MockEnvelopeSigner {
	m := &MockEnvelopeSigner{ctrl: ctrl}
	m.recorder = &MockEnvelopeSignerMockRecorder{m}
	return m
}

func (m *MockEnvelopeSigner) EXPECT() *MockEnvelopeSignerMockRecorder {
	return m.recorder
}

func (m *MockEnvelopeSigner) Sign(msg []byte) *transport.Signature {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sign", msg)
	sig, _ := ret[0].(*transport.Signature)
	return sig
}

func (mr *MockEnvelopeSignerMockRecorder) Sign(msg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sign", reflect.TypeOf((*MockEnvelopeSigner)(nil).Sign), msg)
}

func (m *MockEnvelopeSigner) PublicKey() *transport.PublicKey {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PublicKey")
	pk, _ := ret[0].(*transport.PublicKey)
	return pk
}

func (mr *MockEnvelopeSignerMockRecorder) PublicKey() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PublicKey", reflect.TypeOf((*MockEnvelopeSigner)(nil).PublicKey))
}
