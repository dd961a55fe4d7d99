package classify

import (
	"github.com/minio/minio-go/v7"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

const systemMinIO = "minio"

// MinIO classifies an error returned by the MinIO S3 client. Server-side
// errors ([minio.ErrorResponse]) are mapped by their S3 error code and
// annotated with the code, bucket, key, and HTTP status; context errors
// classify as timeout or canceled and anything else as internal. If err is
// nil, MinIO returns nil.
//
// Example:
//
//	_, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
//	if err != nil {
//	    return classify.MinIO(err, "stat artifact failed")
//	}
func MinIO(err error, message string) *fault.Error {
	if err == nil {
		return nil
	}
	if kind, ok := contextKind(err); ok {
		return classified(err, message, systemMinIO, kind, Retryable(kind))
	}

	resp := minio.ToErrorResponse(err)
	if resp.Code == "" {
		return classified(err, message, systemMinIO, KindInternal, false)
	}

	kind := kindForS3Code(resp.Code)
	extra := map[string]any{
		"s3.code":   resp.Code,
		"s3.status": resp.StatusCode,
	}
	if resp.BucketName != "" {
		extra["s3.bucket"] = resp.BucketName
	}
	if resp.Key != "" {
		extra["s3.key"] = resp.Key
	}
	return classified(err, message, systemMinIO, kind, Retryable(kind)).Ctx(extra)
}

// kindForS3Code maps the S3 error codes the platform actually encounters;
// unlisted codes classify as internal.
func kindForS3Code(code string) string {
	switch code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return KindNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return KindAuth
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou", "PreconditionFailed":
		return KindConflict
	case "SlowDown", "ServiceUnavailable":
		return KindUnavailable
	case "InvalidBucketName", "InvalidObjectName", "XMinioInvalidObjectName", "EntityTooLarge":
		return KindValidation
	default:
		return KindInternal
	}
}
