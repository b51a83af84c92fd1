package handler

import (
	"errors"
	"net/http"

	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/resp"
)

// writeError renders coded errors with their mapped HTTP status.
// Anything else falls through to resp.Error as an internal error.
func writeError(w http.ResponseWriter, err error) {
	var coded *errs.Error
	if errors.As(err, &coded) {
		resp.JSONC(w, coded.Code.HTTP(), resp.ErrorRes{
			Message: coded.Msg,
			Error:   coded.Code.String(),
		})
		return
	}
	resp.Error(w, err)
}
