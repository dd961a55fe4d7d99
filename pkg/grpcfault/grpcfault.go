// Package grpcfault maps contextual faults to and from gRPC statuses, so a
// service boundary can surface a classified fault as the right status code
// and a client can pull an incoming status back into the fault model.
//
// The mapping reads the classification context written by pkg/classify; a
// fault that was never classified surfaces as codes.Internal. The status
// message is the formatted cause chain, which is always non-empty.
package grpcfault

import (
	grpccodes "google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/StricklySoft/stricklysoft-fault/pkg/classify"
	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

// ToStatus converts err into a gRPC status. A nil error maps to OK. A
// fault's status code is derived from the failure kind recorded anywhere
// in its chain (deepest classification wins); a foreign error maps to
// Internal with its plain message.
//
// Example:
//
//	func (s *server) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.Profile, error) {
//	    profile, ferr := s.store.Load(ctx, req.GetId())
//	    if ferr != nil {
//	        return nil, grpcfault.ToStatus(ferr).Err()
//	    }
//	    return profile, nil
//	}
func ToStatus(err error) *grpcstatus.Status {
	if err == nil {
		return grpcstatus.New(grpccodes.OK, "")
	}
	if fe, ok := err.(*fault.Error); ok && fe == nil {
		// A typed-nil fault is what a fault-returning path hands over on
		// success.
		return grpcstatus.New(grpccodes.OK, "")
	}
	f, ok := fault.AsFault(err)
	if !ok {
		return grpcstatus.New(grpccodes.Internal, err.Error())
	}
	return grpcstatus.New(codeForKind(classify.Kind(f)), f.Chain())
}

// Error converts err into an error carrying a gRPC status, ready to return
// from a handler. A nil error stays nil.
func Error(err error) error {
	return ToStatus(err).Err()
}

// FromStatus converts an error carrying a gRPC status back into a fault,
// with the status code and server message recorded in context and the
// original error kept as the cause. It is the client-side inverse of
// [ToStatus]; the conversion is classification-preserving for the kinds
// both directions know, not byte-exact. A nil error stays nil.
func FromStatus(err error) *fault.Error {
	return classify.GRPC(err, "")
}

// codeForKind maps a failure kind to the gRPC status code a server should
// surface. Conflicts map to AlreadyExists, the most common conflict shape
// at this boundary; the round trip through classify treats Aborted and
// FailedPrecondition as conflicts too, so inbound mapping stays wider than
// outbound.
func codeForKind(kind string) grpccodes.Code {
	switch kind {
	case classify.KindNotFound:
		return grpccodes.NotFound
	case classify.KindTimeout:
		return grpccodes.DeadlineExceeded
	case classify.KindCanceled:
		return grpccodes.Canceled
	case classify.KindConflict:
		return grpccodes.AlreadyExists
	case classify.KindUnavailable:
		return grpccodes.Unavailable
	case classify.KindValidation:
		return grpccodes.InvalidArgument
	case classify.KindAuth:
		return grpccodes.Unauthenticated
	default:
		return grpccodes.Internal
	}
}
