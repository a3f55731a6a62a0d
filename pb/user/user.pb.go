// Hand-maintained bindings for user.proto in the legacy generated form.
// The protobuf runtime derives the message descriptors from the struct
// tags, so these stay wire-compatible with the user service's schema as
// long as the tags track the .proto file.

package user

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

type GetUserRequest struct {
	UserId int64 `protobuf:"varint,1,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
}

func (m *GetUserRequest) Reset()         { *m = GetUserRequest{} }
func (m *GetUserRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*GetUserRequest) ProtoMessage()    {}

func (m *GetUserRequest) GetUserId() int64 {
	if m != nil {
		return m.UserId
	}
	return 0
}

type GetUserResponse struct {
	Id             int64  `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Username       string `protobuf:"bytes,2,opt,name=username,proto3" json:"username,omitempty"`
	DisplayPicture string `protobuf:"bytes,3,opt,name=display_picture,json=displayPicture,proto3" json:"display_picture,omitempty"`
}

func (m *GetUserResponse) Reset()         { *m = GetUserResponse{} }
func (m *GetUserResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*GetUserResponse) ProtoMessage()    {}

func (m *GetUserResponse) GetId() int64 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *GetUserResponse) GetUsername() string {
	if m != nil {
		return m.Username
	}
	return ""
}

func (m *GetUserResponse) GetDisplayPicture() string {
	if m != nil {
		return m.DisplayPicture
	}
	return ""
}

type BulkUsersRequest struct {
	Ids []int64 `protobuf:"varint,1,rep,packed,name=ids,proto3" json:"ids,omitempty"`
}

func (m *BulkUsersRequest) Reset()         { *m = BulkUsersRequest{} }
func (m *BulkUsersRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*BulkUsersRequest) ProtoMessage()    {}

func (m *BulkUsersRequest) GetIds() []int64 {
	if m != nil {
		return m.Ids
	}
	return nil
}

type BulkUsersResponse struct {
	Users []*GetUserResponse `protobuf:"bytes,1,rep,name=users,proto3" json:"users,omitempty"`
}

func (m *BulkUsersResponse) Reset()         { *m = BulkUsersResponse{} }
func (m *BulkUsersResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*BulkUsersResponse) ProtoMessage()    {}

func (m *BulkUsersResponse) GetUsers() []*GetUserResponse {
	if m != nil {
		return m.Users
	}
	return nil
}

// The grpc proto codec upgrades legacy messages through protoadapt; these
// assertions keep every message on that contract.
var (
	_ protoadapt.MessageV1 = (*GetUserRequest)(nil)
	_ protoadapt.MessageV1 = (*GetUserResponse)(nil)
	_ protoadapt.MessageV1 = (*BulkUsersRequest)(nil)
	_ protoadapt.MessageV1 = (*BulkUsersResponse)(nil)
)
