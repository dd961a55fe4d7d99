package classify

import (
	grpccodes "google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

const (
	systemGRPC   = "grpc"
	systemQdrant = "qdrant"
)

// GRPC classifies an error carrying a gRPC status. The status code maps to
// a fault kind and the code and server message are recorded in context.
// Context deadline errors are checked first, because the gRPC transport
// may surface them either as raw context errors or as a DeadlineExceeded
// status. Errors without a status classify as internal. If err is nil,
// GRPC returns nil.
//
// Example:
//
//	resp, err := client.Lookup(ctx, req)
//	if err != nil {
//	    return classify.GRPC(err, "directory lookup failed")
//	}
func GRPC(err error, message string) *fault.Error {
	return grpcFault(err, message, systemGRPC)
}

// Qdrant classifies an error returned by the Qdrant Go client, whose
// failures surface as gRPC statuses. Identical to [GRPC] except the fault
// is attributed to the "qdrant" system.
func Qdrant(err error, message string) *fault.Error {
	return grpcFault(err, message, systemQdrant)
}

func grpcFault(err error, message, system string) *fault.Error {
	if err == nil {
		return nil
	}
	if kind, ok := contextKind(err); ok {
		return classified(err, message, system, kind, Retryable(kind))
	}

	st, ok := grpcstatus.FromError(err)
	if !ok {
		return classified(err, message, system, KindInternal, false)
	}

	kind := kindForGRPCCode(st.Code())
	return classified(err, message, system, kind, Retryable(kind)).Ctx(map[string]any{
		"grpc.code":    st.Code().String(),
		"grpc.message": st.Message(),
	})
}

// kindForGRPCCode maps a gRPC status code to a fault kind.
func kindForGRPCCode(code grpccodes.Code) string {
	switch code {
	case grpccodes.NotFound:
		return KindNotFound
	case grpccodes.DeadlineExceeded:
		return KindTimeout
	case grpccodes.Canceled:
		return KindCanceled
	case grpccodes.AlreadyExists, grpccodes.Aborted, grpccodes.FailedPrecondition:
		return KindConflict
	case grpccodes.Unavailable, grpccodes.ResourceExhausted:
		return KindUnavailable
	case grpccodes.InvalidArgument, grpccodes.OutOfRange:
		return KindValidation
	case grpccodes.Unauthenticated, grpccodes.PermissionDenied:
		return KindAuth
	default:
		return KindInternal
	}
}
