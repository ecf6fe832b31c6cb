package errors

import (
	"errors"

	"github.com/louisbranch/dicenotation/internal/platform/errors/i18n"
)

// LocalizedMessage renders the user-facing message for err in locale. Errors
// without a code render the UNKNOWN message.
func LocalizedMessage(err error, locale string) string {
	catalog := i18n.GetCatalog(locale)
	var appErr *Error
	if !errors.As(err, &appErr) {
		return catalog.Format(string(CodeUnknown), nil)
	}
	return catalog.Format(string(appErr.Code), appErr.Metadata)
}

// LocalizedStatus converts err to a gRPC status error carrying the localized
// message. Errors without a code map to codes.Internal.
func LocalizedStatus(err error, locale string) error {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Wrap(CodeUnknown, err.Error(), err)
	}
	catalog := i18n.GetCatalog(locale)
	return appErr.ToGRPCStatus(catalog.Locale(), LocalizedMessage(appErr, locale))
}
