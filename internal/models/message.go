package models

import "encoding/json"

// Event names the verb of a signaling message.
type Event string

// Inbound events.
const (
	// Default partition (admin <-> driver WebRTC signaling).
	EventRegisterAdmin    Event = "register_admin"
	EventRegisterDriver   Event = "register_driver"
	EventRequestVideo     Event = "request_video"
	EventSendOffer        Event = "send_offer"
	EventSendICECandidate Event = "send_ice_candidate"
	EventSendAnswer       Event = "send_answer"

	// Admin partition.
	EventRegisterAdminNS Event = "registerAdmin"
	EventApproveRequest  Event = "approveRequest"
	EventDenyRequest     Event = "denyRequest"

	// Client partition.
	EventRegisterClient  Event = "registerClient"
	EventSendRequest     Event = "sendRequest"
	EventRequestImage    Event = "requestImage"
	EventRequestLocation Event = "requestLocation"

	// Driver partition.
	EventSendLocation Event = "sendLocation"
)

// Outbound events.
const (
	EventStartVideoStream    Event = "start_video_stream"
	EventReceiveOffer        Event = "receive_offer"
	EventReceiveICECandidate Event = "receive_ice_candidate"
	EventReceiveAnswer       Event = "receive_answer"
	EventImageRequest        Event = "imageRequest"
	EventLocationRequest     Event = "locationRequest"
	EventRequestStatus       Event = "requestStatus"
	EventReceiveLocation     Event = "receiveLocation"
	EventError               Event = "error"
)

// Envelope is the wire frame: a verb plus a verb-specific payload.
// For the registration events the payload is a bare participant ID string.
type Envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// VideoStreamStart tells a driver which admin to stream toward.
type VideoStreamStart struct {
	AdminID string `json:"adminId"`
}

// VideoRequest asks a driver to start streaming toward an admin.
type VideoRequest struct {
	AdminID  string `json:"adminId"`
	DriverID string `json:"driverId"`
}

// Offer carries a driver's SDP offer to an admin. The signal blob is
// opaque to the relay.
type Offer struct {
	Signal  json.RawMessage `json:"signal"`
	AdminID string          `json:"adminId"`
}

// OfferForward is what the admin receives: the untouched signal plus the
// sender's connection handle, so the answer can be addressed back directly.
type OfferForward struct {
	Signal       json.RawMessage `json:"signal"`
	DriverSocket string          `json:"driverSocket"`
}

// ICECandidate carries one ICE candidate toward an admin.
type ICECandidate struct {
	Candidate json.RawMessage `json:"candidate"`
	AdminID   string          `json:"adminId"`
}

// ICECandidateForward is the admin-facing shape.
type ICECandidateForward struct {
	Candidate json.RawMessage `json:"candidate"`
}

// Answer carries the admin's SDP answer back to a driver, addressed by the
// connection handle received in OfferForward.
type Answer struct {
	Signal       json.RawMessage `json:"signal"`
	DriverSocket string          `json:"driverSocket"`
}

// AnswerForward is the driver-facing shape.
type AnswerForward struct {
	Signal json.RawMessage `json:"signal"`
}

// ClientRequest is a client-initiated request (image or location) routed
// to an admin.
type ClientRequest struct {
	ClientID string `json:"clientId"`
	AdminID  string `json:"adminId"`
}

// RequestForward is the admin-facing shape of a client request.
type RequestForward struct {
	ClientID string `json:"clientId"`
}

// RequestDecision is an admin's approval or denial for a client.
type RequestDecision struct {
	ClientID string `json:"clientId"`
}

// LocationUpdate is decoded only far enough to find its destination; the
// full payload travels to the client verbatim.
type LocationUpdate struct {
	ClientID string `json:"clientId"`
}

// Status is a human-readable status notice.
type Status struct {
	Message string `json:"message"`
}

// StatusApproved and friends are the user-visible status strings.
const (
	StatusApproved       = "Request Approved"
	StatusDenied         = "Request Denied"
	StatusAdminNotOnline = "Admin is not online"
)
