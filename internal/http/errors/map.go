package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/kjunlab/authfront/internal/gateway"
	"github.com/kjunlab/authfront/internal/login"
)

// Classify traduce un error clasificado de gateway/login a un AppError.
// El mensaje visible se conserva tal cual (err.Error()); solo se decide
// status y código.
func Classify(err error) *AppError {
	var gerr *gateway.Error
	if stderrors.As(err, &gerr) {
		switch gerr.Kind {
		case gateway.KindNetworkUnreachable:
			return New(http.StatusBadGateway, "NETWORK_UNREACHABLE", gerr.Message).WithCause(err)
		case gateway.KindEndpointNotFound:
			return New(http.StatusBadGateway, "ENDPOINT_NOT_FOUND", gerr.Message).WithCause(err)
		default:
			return New(http.StatusUnauthorized, "LOGIN_FAILED", gerr.Message).WithCause(err)
		}
	}

	var ferr *login.Error
	if stderrors.As(err, &ferr) {
		switch ferr.Kind {
		case login.KindUnknownProvider:
			return New(http.StatusBadRequest, "PROVIDER_UNKNOWN", ferr.Message).WithCause(err)
		case login.KindTokenNotReceived:
			return New(http.StatusBadRequest, "TOKEN_NOT_RECEIVED", ferr.Message).WithCause(err)
		case login.KindTokenSaveFailed:
			return New(http.StatusInternalServerError, "TOKEN_SAVE_FAILED", ferr.Message).WithCause(err)
		default:
			return New(http.StatusUnauthorized, "LOGIN_FAILED", ferr.Message).WithCause(err)
		}
	}

	return FromError(err)
}
