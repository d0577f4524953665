package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/services"
	"github.com/profast/parcel-api/internal/web"
)

var statusByError = []struct {
	err    error
	status int
}{
	{models.ErrInvalidID, http.StatusBadRequest},
	{models.ErrInvalidRole, http.StatusBadRequest},
	{models.ErrInvalidStatus, http.StatusBadRequest},
	{models.ErrNotPayable, http.StatusBadRequest},
	{services.ErrNotAnImage, http.StatusBadRequest},
	{services.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrNotFound, http.StatusNotFound},
	{models.ErrAlreadyPaid, http.StatusConflict},
	{models.ErrApplicationExists, http.StatusConflict},
	{models.ErrPaymentInProgress, http.StatusConflict},
	{models.ErrPaymentNotSettled, http.StatusPaymentRequired},
}

// requestError attaches an HTTP status to domain errors. Anything unknown is
// left as is and answered with 500.
func requestError(err error) error {
	var reqErr *web.Error
	if errors.As(err, &reqErr) {
		return err
	}
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return web.NewRequestError(err, e.status)
		}
	}
	return err
}

func fail(c *gin.Context, err error) {
	web.RespondError(c, requestError(err))
}

func badRequest(c *gin.Context, message string) {
	web.RespondError(c, web.NewRequestError(errors.New(message), http.StatusBadRequest))
}
