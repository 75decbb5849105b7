package ledger_service_api

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

type ListAvailableSessionsRequest struct{}

type Session struct {
	ID        string
	Name      string
	Kind      string
	Date      string
	StartTime string
	EndTime   string
	Capacity  int32
	Filled    int32
	Available int32
}

type ListAvailableSessionsResponse struct {
	Sessions []Session
}

type BookSessionRequest struct {
	SessionID string
}

type CancelBookingRequest struct {
	BookingID string
}

type Booking struct {
	ID        string
	UserID    string
	SessionID string
	CreatedAt string
}

func setString(m protoreflect.Message, name, v string) {
	m.Set(m.Descriptor().Fields().ByName(protoreflect.Name(name)), protoreflect.ValueOfString(v))
}

func setInt32(m protoreflect.Message, name string, v int32) {
	m.Set(m.Descriptor().Fields().ByName(protoreflect.Name(name)), protoreflect.ValueOfInt32(v))
}

func getString(m protoreflect.Message, name string) string {
	return m.Get(m.Descriptor().Fields().ByName(protoreflect.Name(name))).String()
}

func getInt32(m protoreflect.Message, name string) int32 {
	return int32(m.Get(m.Descriptor().Fields().ByName(protoreflect.Name(name))).Int())
}

func (r *ListAvailableSessionsRequest) toProto() *dynamicpb.Message {
	return dynamicpb.NewMessage(listAvailableSessionsRequestDesc)
}

func (r *BookSessionRequest) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(bookSessionRequestDesc)
	if r == nil {
		return m
	}
	setString(m, "session_id", r.SessionID)
	return m
}

func bookSessionRequestFromProto(m protoreflect.Message) *BookSessionRequest {
	return &BookSessionRequest{SessionID: getString(m, "session_id")}
}

func (r *CancelBookingRequest) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(cancelBookingRequestDesc)
	if r == nil {
		return m
	}
	setString(m, "booking_id", r.BookingID)
	return m
}

func cancelBookingRequestFromProto(m protoreflect.Message) *CancelBookingRequest {
	return &CancelBookingRequest{BookingID: getString(m, "booking_id")}
}

func (s Session) fill(m protoreflect.Message) {
	setString(m, "id", s.ID)
	setString(m, "name", s.Name)
	setString(m, "kind", s.Kind)
	setString(m, "date", s.Date)
	setString(m, "start_time", s.StartTime)
	setString(m, "end_time", s.EndTime)
	setInt32(m, "capacity", s.Capacity)
	setInt32(m, "filled", s.Filled)
	setInt32(m, "available", s.Available)
}

func sessionFromProto(m protoreflect.Message) Session {
	return Session{
		ID:        getString(m, "id"),
		Name:      getString(m, "name"),
		Kind:      getString(m, "kind"),
		Date:      getString(m, "date"),
		StartTime: getString(m, "start_time"),
		EndTime:   getString(m, "end_time"),
		Capacity:  getInt32(m, "capacity"),
		Filled:    getInt32(m, "filled"),
		Available: getInt32(m, "available"),
	}
}

func (r *ListAvailableSessionsResponse) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(listAvailableSessionsResponseDesc)
	if r == nil {
		return m
	}
	list := m.Mutable(listAvailableSessionsResponseDesc.Fields().ByName("sessions")).List()
	for _, s := range r.Sessions {
		elem := list.NewElement()
		s.fill(elem.Message())
		list.Append(elem)
	}
	return m
}

func listAvailableSessionsResponseFromProto(m protoreflect.Message) *ListAvailableSessionsResponse {
	list := m.Get(listAvailableSessionsResponseDesc.Fields().ByName("sessions")).List()
	out := &ListAvailableSessionsResponse{Sessions: make([]Session, 0, list.Len())}
	for i := 0; i < list.Len(); i++ {
		out.Sessions = append(out.Sessions, sessionFromProto(list.Get(i).Message()))
	}
	return out
}

func (b *Booking) toProto() *dynamicpb.Message {
	m := dynamicpb.NewMessage(bookingDesc)
	if b == nil {
		return m
	}
	setString(m, "id", b.ID)
	setString(m, "user_id", b.UserID)
	setString(m, "session_id", b.SessionID)
	setString(m, "created_at", b.CreatedAt)
	return m
}

func bookingFromProto(m protoreflect.Message) *Booking {
	return &Booking{
		ID:        getString(m, "id"),
		UserID:    getString(m, "user_id"),
		SessionID: getString(m, "session_id"),
		CreatedAt: getString(m, "created_at"),
	}
}
