package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"intersify/internal/common"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func Error(w http.ResponseWriter, err error) {
	var domainErr *common.Error
	if !errors.As(err, &domainErr) {
		domainErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	JSON(w, httpStatus(domainErr.Code), errorBody{Error: errorDetail{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Fields:  domainErr.Fields,
	}})
}

func httpStatus(code common.Code) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
