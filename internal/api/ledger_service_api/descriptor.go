package ledger_service_api

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	protoFile    = "gym/ledger/v1/ledger.proto"
	protoPackage = "gym.ledger.v1"
)

// ledgerFile describes gym/ledger/v1/ledger.proto. Messages on the wire are
// dynamicpb values of these descriptors, so any protobuf gRPC client can
// talk to the service.
var ledgerFile = mustBuildFile()

var (
	listAvailableSessionsRequestDesc  = ledgerFile.Messages().ByName("ListAvailableSessionsRequest")
	listAvailableSessionsResponseDesc = ledgerFile.Messages().ByName("ListAvailableSessionsResponse")
	bookSessionRequestDesc            = ledgerFile.Messages().ByName("BookSessionRequest")
	cancelBookingRequestDesc          = ledgerFile.Messages().ByName("CancelBookingRequest")
	bookingDesc                       = ledgerFile.Messages().ByName("Booking")
)

func stringField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
		JsonName: proto.String(jsonName(name)),
	}
}

func int32Field(name string, number int32) *descriptorpb.FieldDescriptorProto {
	f := stringField(name, number)
	f.Type = descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum()
	return f
}

func repeatedMessageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String("." + protoPackage + "." + typeName),
		JsonName: proto.String(jsonName(name)),
	}
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + protoPackage + "." + in),
		OutputType: proto.String("." + protoPackage + "." + out),
	}
}

// jsonName is protoc's lowerCamelCase conversion of a snake_case field name.
func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

func ledgerFileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(protoFile),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/Domenick1991/gymbooking/internal/api/ledger_service_api"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: proto.String("ListAvailableSessionsRequest")},
			{
				Name: proto.String("Session"),
				Field: []*descriptorpb.FieldDescriptorProto{
					stringField("id", 1),
					stringField("name", 2),
					stringField("kind", 3),
					stringField("date", 4),
					stringField("start_time", 5),
					stringField("end_time", 6),
					int32Field("capacity", 7),
					int32Field("filled", 8),
					int32Field("available", 9),
				},
			},
			{
				Name: proto.String("ListAvailableSessionsResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					repeatedMessageField("sessions", 1, "Session"),
				},
			},
			{
				Name:  proto.String("BookSessionRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{stringField("session_id", 1)},
			},
			{
				Name:  proto.String("CancelBookingRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{stringField("booking_id", 1)},
			},
			{
				Name: proto.String("Booking"),
				Field: []*descriptorpb.FieldDescriptorProto{
					stringField("id", 1),
					stringField("user_id", 2),
					stringField("session_id", 3),
					stringField("created_at", 4),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("LedgerService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					method("ListAvailableSessions", "ListAvailableSessionsRequest", "ListAvailableSessionsResponse"),
					method("BookSession", "BookSessionRequest", "Booking"),
					method("CancelBooking", "CancelBookingRequest", "Booking"),
				},
			},
		},
	}
}

// mustBuildFile builds the descriptor and registers it globally so grpc
// reflection can serve it.
func mustBuildFile() protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(ledgerFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", protoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("register %s: %v", protoFile, err))
	}
	return fd
}
