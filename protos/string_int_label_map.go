// Package protos holds protocol buffer messages exchanged with the TensorFlow Object Detection
// API.
package protos

import (
	"github.com/golang/protobuf/proto"
)

// StringIntLabelMapItem mirrors object_detection.protos.StringIntLabelMapItem.
type StringIntLabelMapItem struct {
	// String name. The most common practice is to set this to a MID or synsets id.
	Name *string `protobuf:"bytes,1,opt,name=name" json:"name,omitempty"`
	// Integer id that maps to the string name above. Label ids should start from 1.
	Id *int32 `protobuf:"varint,2,opt,name=id" json:"id,omitempty"`
	// Human readable string label.
	DisplayName *string `protobuf:"bytes,3,opt,name=display_name,json=displayName" json:"display_name,omitempty"`
}

func (m *StringIntLabelMapItem) Reset()         { *m = StringIntLabelMapItem{} }
func (m *StringIntLabelMapItem) String() string { return proto.CompactTextString(m) }
func (*StringIntLabelMapItem) ProtoMessage()    {}

func (m *StringIntLabelMapItem) GetName() string {
	if m != nil && m.Name != nil {
		return *m.Name
	}
	return ""
}

func (m *StringIntLabelMapItem) GetId() int32 {
	if m != nil && m.Id != nil {
		return *m.Id
	}
	return 0
}

func (m *StringIntLabelMapItem) GetDisplayName() string {
	if m != nil && m.DisplayName != nil {
		return *m.DisplayName
	}
	return ""
}

// StringIntLabelMap mirrors object_detection.protos.StringIntLabelMap, the message stored in
// label_map.pbtxt files.
type StringIntLabelMap struct {
	Item []*StringIntLabelMapItem `protobuf:"bytes,1,rep,name=item" json:"item,omitempty"`
}

func (m *StringIntLabelMap) Reset()         { *m = StringIntLabelMap{} }
func (m *StringIntLabelMap) String() string { return proto.CompactTextString(m) }
func (*StringIntLabelMap) ProtoMessage()    {}

func (m *StringIntLabelMap) GetItem() []*StringIntLabelMapItem {
	if m != nil {
		return m.Item
	}
	return nil
}
