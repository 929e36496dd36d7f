package handlers

import (
	"encoding/json"
	"log"

	"github.com/fleetlink/signaling/internal/models"
	"github.com/fleetlink/signaling/internal/presence"
)

// Namespace is a logical traffic partition. Each partition accepts its own
// event set; the registry underneath is shared, so an admin registered on
// the default partition is reachable from the client partition.
type Namespace string

const (
	NamespaceDefault Namespace = "signal"
	NamespaceAdmin   Namespace = "admin"
	NamespaceClient  Namespace = "client"
	NamespaceDriver  Namespace = "driver"
)

func (s *Signaling) route(ns Namespace, sender *Client, env models.Envelope) {
	switch ns {
	case NamespaceDefault:
		s.routeDefault(sender, env)
	case NamespaceAdmin:
		s.routeAdmin(sender, env)
	case NamespaceClient:
		s.routeClient(sender, env)
	case NamespaceDriver:
		s.routeDriver(sender, env)
	}
}

// routeDefault carries the admin<->driver WebRTC handshake. Lookup misses
// here are silent: both ends watch the signaling state machine and a
// missing peer surfaces as a session that never comes up.
func (s *Signaling) routeDefault(sender *Client, env models.Envelope) {
	switch env.Event {
	case models.EventRegisterAdmin:
		s.register(sender, env, presence.RoleAdmin)

	case models.EventRegisterDriver:
		s.register(sender, env, presence.RoleDriver)

	case models.EventRequestVideo:
		var req models.VideoRequest
		if !s.decode(sender, env, &req) {
			return
		}
		if req.AdminID == "" || req.DriverID == "" {
			s.rejectMissingID(sender, env.Event)
			return
		}
		if handle, ok := s.registry.Lookup(presence.RoleDriver, req.DriverID); ok {
			log.Printf("Admin %s requesting video from driver %s", req.AdminID, req.DriverID)
			s.hub.Deliver(handle, models.EventStartVideoStream, models.VideoStreamStart{AdminID: req.AdminID})
		}

	case models.EventSendOffer:
		var req models.Offer
		if !s.decode(sender, env, &req) {
			return
		}
		if req.AdminID == "" {
			s.rejectMissingID(sender, env.Event)
			return
		}
		if handle, ok := s.registry.Lookup(presence.RoleAdmin, req.AdminID); ok {
			s.hub.Deliver(handle, models.EventReceiveOffer, models.OfferForward{
				Signal:       req.Signal,
				DriverSocket: sender.Handle,
			})
		}

	case models.EventSendICECandidate:
		var req models.ICECandidate
		if !s.decode(sender, env, &req) {
			return
		}
		if req.AdminID == "" {
			s.rejectMissingID(sender, env.Event)
			return
		}
		if handle, ok := s.registry.Lookup(presence.RoleAdmin, req.AdminID); ok {
			s.hub.Deliver(handle, models.EventReceiveICECandidate, models.ICECandidateForward{Candidate: req.Candidate})
		}

	case models.EventSendAnswer:
		var req models.Answer
		if !s.decode(sender, env, &req) {
			return
		}
		if req.DriverSocket == "" {
			s.rejectMissingID(sender, env.Event)
			return
		}
		// The answer is addressed by connection handle, not logical ID:
		// the offer carried the driver's handle to the admin.
		s.hub.Deliver(req.DriverSocket, models.EventReceiveAnswer, models.AnswerForward{Signal: req.Signal})

	default:
		s.unknownEvent(NamespaceDefault, env.Event)
	}
}

func (s *Signaling) routeAdmin(sender *Client, env models.Envelope) {
	switch env.Event {
	case models.EventRegisterAdminNS:
		s.register(sender, env, presence.RoleAdmin)

	case models.EventApproveRequest:
		s.decideRequest(sender, env, models.StatusApproved)

	case models.EventDenyRequest:
		s.decideRequest(sender, env, models.StatusDenied)

	default:
		s.unknownEvent(NamespaceAdmin, env.Event)
	}
}

func (s *Signaling) routeClient(sender *Client, env models.Envelope) {
	switch env.Event {
	case models.EventRegisterClient:
		s.register(sender, env, presence.RoleClient)

	case models.EventSendRequest, models.EventRequestImage:
		s.forwardClientRequest(sender, env, models.EventImageRequest)

	case models.EventRequestLocation:
		s.forwardClientRequest(sender, env, models.EventLocationRequest)

	default:
		s.unknownEvent(NamespaceClient, env.Event)
	}
}

func (s *Signaling) routeDriver(sender *Client, env models.Envelope) {
	switch env.Event {
	case models.EventSendLocation:
		var loc models.LocationUpdate
		if !s.decode(sender, env, &loc) {
			return
		}
		if loc.ClientID == "" {
			s.rejectMissingID(sender, env.Event)
			return
		}
		if handle, ok := s.registry.Lookup(presence.RoleClient, loc.ClientID); ok {
			// Forward the location payload untouched.
			s.hub.Deliver(handle, models.EventReceiveLocation, env.Data)
		}

	default:
		s.unknownEvent(NamespaceDriver, env.Event)
	}
}

// register handles all four registration verbs; payload is a bare
// participant ID string. Upsert semantics: a reconnecting participant
// simply overwrites its stale mapping.
func (s *Signaling) register(sender *Client, env models.Envelope, role presence.Role) {
	var id string
	if !s.decode(sender, env, &id) {
		return
	}
	if id == "" {
		s.rejectMissingID(sender, env.Event)
		return
	}
	s.registry.Register(role, id, sender.Handle)
	log.Printf("%s registered: %s", role, id)
}

// decideRequest relays an admin's approve/deny verdict to the client it
// concerns. A client that already went away is a silent no-op.
func (s *Signaling) decideRequest(sender *Client, env models.Envelope, status string) {
	var req models.RequestDecision
	if !s.decode(sender, env, &req) {
		return
	}
	if req.ClientID == "" {
		s.rejectMissingID(sender, env.Event)
		return
	}
	if handle, ok := s.registry.Lookup(presence.RoleClient, req.ClientID); ok {
		log.Printf("Request for client %s: %s", req.ClientID, status)
		s.hub.Deliver(handle, models.EventRequestStatus, models.Status{Message: status})
	}
}

// forwardClientRequest routes a client-initiated image or location request
// to its admin. This is the one path where a lookup miss is user-visible:
// the client is told the admin is not online instead of waiting forever.
func (s *Signaling) forwardClientRequest(sender *Client, env models.Envelope, forward models.Event) {
	var req models.ClientRequest
	if !s.decode(sender, env, &req) {
		return
	}
	if req.AdminID == "" || req.ClientID == "" {
		s.rejectMissingID(sender, env.Event)
		return
	}
	handle, ok := s.registry.Lookup(presence.RoleAdmin, req.AdminID)
	if !ok {
		log.Printf("Admin %s is not online, notifying client %s", req.AdminID, req.ClientID)
		sender.sendEvent(models.EventRequestStatus, models.Status{Message: models.StatusAdminNotOnline})
		return
	}
	s.hub.Deliver(handle, forward, models.RequestForward{ClientID: req.ClientID})
}

func (s *Signaling) decode(sender *Client, env models.Envelope, v any) bool {
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.Printf("Bad %s payload from %s: %v", env.Event, sender.Handle, err)
		sender.sendEvent(models.EventError, models.Status{Message: "malformed " + string(env.Event) + " payload"})
		return false
	}
	return true
}

func (s *Signaling) rejectMissingID(sender *Client, event models.Event) {
	sender.sendEvent(models.EventError, models.Status{Message: "missing participant id in " + string(event)})
}

func (s *Signaling) unknownEvent(ns Namespace, event models.Event) {
	log.Printf("Unknown event %q on %s namespace", event, ns)
}
