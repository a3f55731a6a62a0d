// Hand-maintained bindings for auth.proto in the legacy generated form.
// The protobuf runtime derives the message descriptors from the struct
// tags, so these stay wire-compatible with the auth service's schema as
// long as the tags track the .proto file.

package auth

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

type ValidateTokenRequest struct {
	Token string `protobuf:"bytes,1,opt,name=token,proto3" json:"token,omitempty"`
}

func (m *ValidateTokenRequest) Reset()         { *m = ValidateTokenRequest{} }
func (m *ValidateTokenRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ValidateTokenRequest) ProtoMessage()    {}

func (m *ValidateTokenRequest) GetToken() string {
	if m != nil {
		return m.Token
	}
	return ""
}

type ValidateTokenResponse struct {
	Valid  bool  `protobuf:"varint,1,opt,name=valid,proto3" json:"valid,omitempty"`
	UserId int64 `protobuf:"varint,2,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
}

func (m *ValidateTokenResponse) Reset()         { *m = ValidateTokenResponse{} }
func (m *ValidateTokenResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ValidateTokenResponse) ProtoMessage()    {}

func (m *ValidateTokenResponse) GetValid() bool {
	if m != nil {
		return m.Valid
	}
	return false
}

func (m *ValidateTokenResponse) GetUserId() int64 {
	if m != nil {
		return m.UserId
	}
	return 0
}

// The grpc proto codec upgrades legacy messages through protoadapt; these
// assertions keep every message on that contract.
var (
	_ protoadapt.MessageV1 = (*ValidateTokenRequest)(nil)
	_ protoadapt.MessageV1 = (*ValidateTokenResponse)(nil)
)
