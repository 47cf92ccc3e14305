package services

import "github.com/enclaveworks/enclave-sdk/pkg/serrors"

// Error taxonomy for the airlock lifecycle. Messages are client-safe: store
// and bus failures surface only as a generic service-unavailable class.
var (
	ErrAirlockDisabled = serrors.NewError(
		"AIRLOCK_DISABLED", "airlock is not enabled in this workspace")
	ErrMissingNotificationContact = serrors.NewError(
		"AIRLOCK_MISSING_NOTIFICATION_CONTACT", "workspace has no notification contact for a required role")
	ErrStoreUnavailable = serrors.NewError(
		"AIRLOCK_STORE_UNAVAILABLE", "state store is not responding")
	ErrNotificationUnavailable = serrors.NewError(
		"AIRLOCK_NOTIFICATION_UNAVAILABLE", "notification service is not responding")
	ErrNotificationUpdateUnavailable = serrors.NewError(
		"AIRLOCK_NOTIFICATION_UPDATE_UNAVAILABLE", "request was updated but stakeholders could not be notified")
	ErrIllegalStatusChange = serrors.NewError(
		"AIRLOCK_ILLEGAL_STATUS_CHANGE", "illegal status change")
	ErrInvalidReviewDecision = serrors.NewError(
		"AIRLOCK_INVALID_REVIEW_DECISION", "review decision must be approved or rejected")
	ErrReviewWrongState = serrors.NewError(
		"AIRLOCK_REVIEW_WRONG_STATE", "request must be in review for this action")
	ErrReviewConfiguration = serrors.NewError(
		"AIRLOCK_REVIEW_CONFIGURATION", "airlock review configuration is missing or malformed")
	ErrDeploymentUnavailable = serrors.NewError(
		"AIRLOCK_DEPLOYMENT_UNAVAILABLE", "deployment processor is not responding")
	ErrLinkWrongState = serrors.NewError(
		"AIRLOCK_LINK_WRONG_STATE", "request files are not accessible in the current status")
	ErrFileStoreUnavailable = serrors.NewError(
		"AIRLOCK_FILE_STORE_UNAVAILABLE", "file store is not responding")
)
