package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Fail hands err to the configured ErrorHandler.
//
//	if err != nil {
//		return handler.Fail(errors.Join(handler.ErrServiceUnavailable, err))
//	}
func Fail(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return errorResponse{err: err}
}
